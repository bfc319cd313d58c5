package restitch

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	result := Version()

	assert.NotEmpty(t, result)
	assert.Regexp(t, regexp.MustCompile(`^\d+\.\d+\.\d+$`), result)
}
