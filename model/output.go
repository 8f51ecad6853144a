package model

import "github.com/viant/gitroast/model/profile"

// RunOutput is the product of a successful run: the subject's normalized
// profile paired with the generated roast. Analysis is the stage-1 text the
// roast was grounded on; it is retained for inspection only.
type RunOutput struct {
	Profile  *profile.Profile `json:"profile"`
	Artifact string           `json:"artifact"`
	Analysis string           `json:"analysis,omitempty"`
}
