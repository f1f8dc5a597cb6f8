// Package errors_test provides unit tests for the AppError type, factory
// functions, and error-chain helpers defined in pkg/errors/errors.go.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/DeNovo-Designer/pkg/errors"
)

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"candidate not found", errors.ErrCodeCandidateNotFound, "candidate Ligand-999 not found"},
		{"invalid count", errors.ErrCodeInvalidCount, "count must be positive"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
		})
	}
}

func TestError_Format(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.ErrCodeCandidateNotFound, "candidate not found").WithDetail("id=Ligand-999")
	assert.Equal(t, "[CAND_001] candidate not found: id=Ligand-999", ae.Error())

	bare := errors.New(errors.CodeInternal, "boom")
	assert.Equal(t, "[COMMON_001] boom", bare.Error())
}

func TestWrap_NilErrReturnsNil(t *testing.T) {
	t.Parallel()

	assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "should not matter"))
}

func TestWrap_CauseChainIsPreserved(t *testing.T) {
	t.Parallel()

	root := stderrors.New("connection refused")
	wrapped := errors.Wrap(root, errors.ErrCodeCacheError, "failed to load run")

	require.NotNil(t, wrapped)
	assert.True(t, stderrors.Is(wrapped, root))
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestWrap_UnknownCodePreservesOriginal(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeCandidateNotFound, "missing")
	outer := errors.Wrap(inner, errors.CodeUnknown, "lookup failed")

	assert.Equal(t, errors.ErrCodeCandidateNotFound, outer.Code)
}

func TestWithDetail_NilSafe(t *testing.T) {
	t.Parallel()

	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
	assert.Nil(t, ae.WithCause(stderrors.New("x")))
}

func TestWithDetail_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := errors.New(errors.CodeNotFound, "missing")
	_ = base.WithDetail("id=1")
	assert.Empty(t, base.Detail)
}

func TestIs_SentinelSurvivesDetailAndCause(t *testing.T) {
	t.Parallel()

	held := errors.New(errors.ErrCodeConflict, "lock not held")
	acquired := errors.New(errors.ErrCodeConflict, "lock not acquired")

	err := held.WithDetail("key=a").WithCause(stderrors.New("boom"))
	assert.ErrorIs(t, err, held)
	assert.NotErrorIs(t, err, acquired)
	assert.ErrorIs(t, fmt.Errorf("outer: %w", err), held)

	var nilTarget *errors.AppError
	assert.False(t, held.Is(nilTarget))
	assert.False(t, held.Is(stderrors.New("lock not held")))
}

func TestIsCode_ThroughForeignWrapper(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeCountExceedsFixture, "too many")
	outer := fmt.Errorf("build: %w", inner)

	assert.True(t, errors.IsCode(outer, errors.ErrCodeCountExceedsFixture))
	assert.False(t, errors.IsCode(outer, errors.ErrCodeInvalidCount))
}

func TestIsCode_NestedAppErrors(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeCandidateNotFound, "missing")
	outer := errors.Wrap(inner, errors.ErrCodeExportFailed, "export")

	assert.True(t, errors.IsCode(outer, errors.ErrCodeExportFailed))
	assert.True(t, errors.IsCode(outer, errors.ErrCodeCandidateNotFound))
}

func TestIsNotFound(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected bool
	}{
		{"generic", errors.NotFound("not found"), true},
		{"candidate", errors.New(errors.ErrCodeCandidateNotFound, "x"), true},
		{"run", errors.New(errors.ErrCodeAnalysisRunNotFound, "x"), true},
		{"wrapped", fmt.Errorf("ctx: %w", errors.NotFound("x")), true},
		{"internal", errors.Internal("x"), false},
		{"plain", stderrors.New("x"), false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, errors.IsNotFound(tc.err))
		})
	}
}

func TestIsInvalidArgument(t *testing.T) {
	assert.True(t, errors.IsInvalidArgument(errors.InvalidArgument("bad")))
	assert.True(t, errors.IsInvalidArgument(errors.New(errors.ErrCodeInvalidCount, "bad")))
	assert.True(t, errors.IsInvalidArgument(errors.New(errors.ErrCodeValidation, "bad")))
	assert.False(t, errors.IsInvalidArgument(errors.NotFound("x")))
	assert.False(t, errors.IsInvalidArgument(stderrors.New("x")))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("x")))
	assert.Equal(t, errors.ErrCodeInvalidTier, errors.GetCode(errors.New(errors.ErrCodeInvalidTier, "x")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, 404, errors.New(errors.ErrCodeCandidateNotFound, "x").HTTPStatus())
	assert.Equal(t, 400, errors.New(errors.ErrCodeTargetMissing, "x").HTTPStatus())
}

//Personal.AI order the ending
