// Package gitroast turns a GitHub username into a comedy roast grounded in
// the subject's public footprint. A run fetches the profile and repository
// data concurrently, joins both behind a completion barrier and feeds the
// joined state through a strictly sequential two-stage generation pipeline:
// an analysis pass followed by the roast-writing pass grounded on it.
//
// Typical embedding:
//
//	srv := gitroast.New()
//	output, err := srv.Runtime().Roast(ctx, "octocat")
//	if err != nil { ... }
//	fmt.Println(output.Artifact)
//
// A run either yields the complete (profile, artifact) pair or a categorized
// error: ErrSubjectNotFound, ErrJoinPrecondition or ErrGeneration.
package gitroast
