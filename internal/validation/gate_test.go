package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGate_ShortTextRejectedRegardlessOfKeywords(t *testing.T) {
	g := NewGate(0, nil)
	// 30 characters including a keyword
	text := "experience education skills !!"
	assert.Len(t, text, 30)

	res := g.Check(text)
	assert.False(t, res.OK)
	assert.Contains(t, res.Reason, "blank")
}

func TestGate_SingleKeywordAnyCasePasses(t *testing.T) {
	g := NewGate(0, nil)
	// 200 chars, only "Experience" present from the keyword set
	text := "Experience " + strings.Repeat("x", 189)
	assert.Len(t, text, 200)

	res := g.Check(text)
	assert.True(t, res.OK)
}

func TestGate_NoKeywordsRejectedWithReadableReason(t *testing.T) {
	g := NewGate(0, nil)
	text := strings.Repeat("lorem ipsum dolor sit amet ", 10)

	res := g.Check(text)
	assert.False(t, res.OK)
	assert.Contains(t, res.Reason, "does not appear to be a resume")
	assert.Contains(t, res.Reason, "experience, education, skills")
}

func TestGate_ConfigurableThresholdAndKeywords(t *testing.T) {
	g := NewGate(10, []string{"lebenslauf"})

	assert.True(t, g.Check("Lebenslauf von Jane Doe").OK)
	assert.False(t, g.Check("Experience Education Skills Summary").OK)
	assert.False(t, g.Check("kurz").OK)
}

func TestGate_WhitespaceStrippedBeforeLengthCheck(t *testing.T) {
	g := NewGate(0, nil)
	text := "   experience   " + strings.Repeat(" ", 100)
	res := g.Check(text)
	assert.False(t, res.OK, "padding whitespace does not count toward length")
}

func TestRejectedError_Message(t *testing.T) {
	err := &RejectedError{Reason: "not a resume"}
	assert.Equal(t, "validation rejected: not a resume", err.Error())
}
