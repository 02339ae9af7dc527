// Copyright (c) 2026 CivicPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/civicportal/internal/platform/sec"
)

var apiKeyPattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(sec.APIKeyBytes)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(sec.APIKeyBytes)
	require.NoError(t, err)

	assert.Regexp(t, apiKeyPattern, first)
	assert.NotEqual(t, first, second)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, sec.HashToken("abc"), sec.HashToken("abc"))
	assert.NotEqual(t, sec.HashToken("abc"), sec.HashToken("abd"))
	assert.Len(t, sec.HashToken("abc"), 64)
}
