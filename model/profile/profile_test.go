package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_Normalize(t *testing.T) {
	subject := Profile{Username: "octocat", Name: "  ", Followers: 9000}
	subject.Normalize()
	assert.Equal(t, NotProvided, subject.Name)
	assert.Equal(t, NoBio, subject.Bio)
	assert.Equal(t, NotProvided, subject.Location)
	assert.Equal(t, NotProvided, subject.Company)
	assert.Equal(t, NotProvided, subject.Blog)
	assert.Equal(t, "octocat", subject.Username)
	assert.Equal(t, 9000, subject.Followers)

	populated := Profile{Name: "The Octocat", Bio: "I roast", Location: "SF", Company: "GitHub", Blog: "https://octo.cat"}
	populated.Normalize()
	assert.Equal(t, "The Octocat", populated.Name)
	assert.Equal(t, "I roast", populated.Bio)
}

func TestRepository_Normalize(t *testing.T) {
	repo := Repository{Name: "Hello-World"}
	repo.Normalize()
	assert.Equal(t, NoDescription, repo.Description)
	assert.Equal(t, NotSpecified, repo.Language)
	assert.NotNil(t, repo.Topics)
	assert.Equal(t, 0, len(repo.Topics))

	repo = Repository{Description: "demo", Language: "Go", Topics: []string{"api"}}
	repo.Normalize()
	assert.Equal(t, "demo", repo.Description)
	assert.Equal(t, "Go", repo.Language)
	assert.Equal(t, []string{"api"}, repo.Topics)
}

func TestProfile_Summary(t *testing.T) {
	subject := Profile{Username: "octocat", Followers: 9000, CreatedAt: "2011-01-25T18:44:36Z"}
	subject.Normalize()
	summary := subject.Summary()
	assert.Contains(t, summary, "- Username: octocat\n")
	assert.Contains(t, summary, "- Followers: 9000\n")
	assert.Contains(t, summary, "- Bio: "+NoBio+"\n")
	assert.Contains(t, summary, "- Created At: 2011-01-25T18:44:36Z\n")
}

func TestDigest(t *testing.T) {
	assert.Equal(t, "", Digest(nil))

	repos := []Repository{
		{Name: "Hello-World", Language: "Go", Stars: 1500, Topics: []string{"demo", "api"}},
		{Name: "Spoon-Knife", Fork: true},
	}
	for i := range repos {
		repos[i].Normalize()
	}
	digest := Digest(repos)
	blocks := []string{"- Name: Hello-World", "- Name: Spoon-Knife"}
	for _, block := range blocks {
		assert.Contains(t, digest, block)
	}
	assert.Contains(t, digest, "- Topics: [demo, api]")
	assert.Contains(t, digest, "- Is Fork: true")
	assert.Contains(t, digest, "- Description: "+NoDescription)
	// deterministic, input order preserved
	assert.Equal(t, digest, Digest(repos))
	assert.Less(t, strings.Index(digest, "Hello-World"), strings.Index(digest, "Spoon-Knife"))
}
