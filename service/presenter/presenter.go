// Package presenter renders run results for a consumer surface.
package presenter

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/viant/gitroast/model"
)

// Presenter renders run results.
type Presenter interface {
	Present(ctx context.Context, output *model.RunOutput) error
	PresentError(ctx context.Context, subject string, err error) error
}

// Stdout renders a textual profile card followed by the roast.
type Stdout struct {
	writer io.Writer
}

// NewStdout creates a stdout presenter; a nil writer defaults to os.Stdout.
func NewStdout(writer io.Writer) *Stdout {
	if writer == nil {
		writer = os.Stdout
	}
	return &Stdout{writer: writer}
}

// Present renders the profile card and the roast.
func (p *Stdout) Present(_ context.Context, output *model.RunOutput) error {
	subject := output.Profile
	var b strings.Builder
	b.WriteString("## " + subject.Name + " (@" + subject.Username + ")\n\n")
	b.WriteString(subject.Bio + "\n\n")
	fmt.Fprintf(&b, "Followers: %d | Following: %d | Public repos: %d\n",
		subject.Followers, subject.Following, subject.PublicRepos)
	fmt.Fprintf(&b, "Location: %s | Company: %s\n\n", subject.Location, subject.Company)
	b.WriteString("---\n\n")
	b.WriteString(output.Artifact + "\n")
	_, err := io.WriteString(p.writer, b.String())
	return err
}

// PresentError renders a categorized failure.
func (p *Stdout) PresentError(_ context.Context, subject string, err error) error {
	_, werr := fmt.Fprintf(p.writer, "roast of %s failed: %v\n", subject, err)
	return werr
}
