package profile

import (
	"fmt"
	"strings"
)

// Sentinel values substituted for absent optional upstream fields. The
// substitution is total: downstream consumers never see an empty optional
// field.
const (
	NotProvided   = "Not provided"
	NoBio         = "No bio provided"
	NoDescription = "No description provided"
	NotSpecified  = "Not specified"
)

// Profile represents a normalized GitHub user profile.
type Profile struct {
	Username    string `json:"username" yaml:"username"`
	Name        string `json:"name" yaml:"name"`
	Bio         string `json:"bio" yaml:"bio"`
	Followers   int    `json:"followers" yaml:"followers"`
	Following   int    `json:"following" yaml:"following"`
	PublicRepos int    `json:"publicRepos" yaml:"publicRepos"`
	Location    string `json:"location" yaml:"location"`
	Company     string `json:"company" yaml:"company"`
	Blog        string `json:"blog" yaml:"blog"`
	CreatedAt   string `json:"createdAt" yaml:"createdAt"`
	AvatarURL   string `json:"avatarUrl" yaml:"avatarUrl"`
}

// Repository represents a normalized GitHub repository.
type Repository struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Language    string   `json:"language" yaml:"language"`
	Stars       int      `json:"stars" yaml:"stars"`
	Forks       int      `json:"forks" yaml:"forks"`
	OpenIssues  int      `json:"openIssues" yaml:"openIssues"`
	CreatedAt   string   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   string   `json:"updatedAt" yaml:"updatedAt"`
	Topics      []string `json:"topics" yaml:"topics"`
	Fork        bool     `json:"fork" yaml:"fork"`
}

// Normalize replaces absent optional fields with their sentinels so that
// every field is always populated.
func (p *Profile) Normalize() {
	p.Name = orSentinel(p.Name, NotProvided)
	p.Bio = orSentinel(p.Bio, NoBio)
	p.Location = orSentinel(p.Location, NotProvided)
	p.Company = orSentinel(p.Company, NotProvided)
	p.Blog = orSentinel(p.Blog, NotProvided)
}

// Normalize replaces absent optional fields with their sentinels and ensures
// the topic set is never nil.
func (r *Repository) Normalize() {
	r.Description = orSentinel(r.Description, NoDescription)
	r.Language = orSentinel(r.Language, NotSpecified)
	if r.Topics == nil {
		r.Topics = []string{}
	}
}

func orSentinel(value, sentinel string) string {
	if strings.TrimSpace(value) == "" {
		return sentinel
	}
	return value
}

// Summary renders the profile as flattened text suitable for prompt
// interpolation.
func (p *Profile) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Username: %s\n", p.Username)
	fmt.Fprintf(&b, "- Name: %s\n", p.Name)
	fmt.Fprintf(&b, "- Bio: %s\n", p.Bio)
	fmt.Fprintf(&b, "- Followers: %d\n", p.Followers)
	fmt.Fprintf(&b, "- Following: %d\n", p.Following)
	fmt.Fprintf(&b, "- Public Repos: %d\n", p.PublicRepos)
	fmt.Fprintf(&b, "- Location: %s\n", p.Location)
	fmt.Fprintf(&b, "- Company: %s\n", p.Company)
	fmt.Fprintf(&b, "- Blog: %s\n", p.Blog)
	fmt.Fprintf(&b, "- Created At: %s\n", p.CreatedAt)
	return b.String()
}

// Digest flattens a repository list into the textual rendering consumed by
// the pipeline prompts. The output is deterministic: one block per
// repository, input order preserved.
func Digest(repos []Repository) string {
	blocks := make([]string, 0, len(repos))
	for i := range repos {
		repo := &repos[i]
		var b strings.Builder
		fmt.Fprintf(&b, "- Name: %s\n", repo.Name)
		fmt.Fprintf(&b, "- Description: %s\n", repo.Description)
		fmt.Fprintf(&b, "- Language: %s\n", repo.Language)
		fmt.Fprintf(&b, "- Stars: %d\n", repo.Stars)
		fmt.Fprintf(&b, "- Forks: %d\n", repo.Forks)
		fmt.Fprintf(&b, "- Created At: %s\n", repo.CreatedAt)
		fmt.Fprintf(&b, "- Updated At: %s\n", repo.UpdatedAt)
		fmt.Fprintf(&b, "- Topics: [%s]\n", strings.Join(repo.Topics, ", "))
		fmt.Fprintf(&b, "- Is Fork: %v", repo.Fork)
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}
