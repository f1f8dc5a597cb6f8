package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryCodeHasStatusAndMessage(t *testing.T) {
	for code := range ErrorCodeHTTPStatus {
		_, ok := ErrorCodeMessage[code]
		assert.True(t, ok, "missing message for %s", code)
	}
	for code := range ErrorCodeMessage {
		_, ok := ErrorCodeHTTPStatus[code]
		assert.True(t, ok, "missing status for %s", code)
	}
}

func TestHTTPStatusForCode_Unknown(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusForCode("NOPE_999"))
	assert.Equal(t, "unknown error", DefaultMessageForCode("NOPE_999"))
}

func TestClientServerClassification(t *testing.T) {
	assert.True(t, IsClientError(ErrCodeCandidateNotFound))
	assert.True(t, IsClientError(ErrCodeCountExceedsFixture))
	assert.False(t, IsClientError(ErrCodeInternal))
	assert.True(t, IsServerError(ErrCodeStorageError))
}

func TestModuleForCode(t *testing.T) {
	assert.Equal(t, "CAND", ModuleForCode(ErrCodeCandidateNotFound))
	assert.Equal(t, "ANL", ModuleForCode(ErrCodeTargetMissing))
	assert.Equal(t, "COMMON", ModuleForCode(ErrCodeInternal))
	assert.Equal(t, "UNKNOWN", ModuleForCode(CodeOK))
}

//Personal.AI order the ending
