package fancy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/malicorX/moltworld/internal/fancy"
)

type StylesTestSuite struct {
	suite.Suite
}

func (s *StylesTestSuite) TestStylesRender() {
	sample := "Test Text"
	for _, render := range []func(string) string{
		fancy.ToolText,
		fancy.SourceText,
		fancy.URLText,
		fancy.ValidText,
		fancy.ErrorText,
		fancy.PathText,
		fancy.SummaryText,
		fancy.CountText,
	} {
		s.Contains(render(sample), sample)
	}
}

func (s *StylesTestSuite) TestSecretText() {
	s.Contains(fancy.SecretText(""), "(none)")
	s.Contains(fancy.SecretText("abc"), "****")
	s.NotContains(fancy.SecretText("abc"), "abc")

	masked := fancy.SecretText("eyJhbGciOiJIUzI1NiJ9.secret-tail")
	s.Contains(masked, "****tail")
	s.NotContains(masked, "eyJhbGci")
}

func (s *StylesTestSuite) TestFormatSection() {
	s.Contains(fancy.FormatSection("Tools", 8), "Tools (8)")
	s.NotContains(fancy.FormatSection("World", 0), "(0)")
}

func TestStylesSuite(t *testing.T) {
	suite.Run(t, new(StylesTestSuite))
}

func TestRootStyle(t *testing.T) {
	assert.Contains(t, fancy.RootStyle.Render("moltworld"), "moltworld")
}
