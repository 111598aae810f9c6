package simerr

import (
	stderrors "errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindsSurviveWrapping(t *testing.T) {
	err := pkgerrors.Wrap(Domain("sampling.pick", "value %v outside [0, 1]", 1.5), "auto financial")

	require.True(t, IsKind(err, KindDomain))
	assert.False(t, IsKind(err, KindValidation))
	assert.Equal(t, "DOMAIN_ERROR", Code(err))
	assert.Contains(t, err.Error(), "value 1.5 outside [0, 1]")
}

func TestWrapValidationKeepsCause(t *testing.T) {
	root := stderrors.New("invalid character 'x'")
	err := WrapValidation("engine.decode", root)

	require.ErrorIs(t, err, root)

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindValidation, se.Kind)
	assert.Equal(t, "engine.decode", se.Op)
	assert.Equal(t, "VALIDATION_ERROR", Code(err))
}

func TestWrapValidationNil(t *testing.T) {
	assert.NoError(t, WrapValidation("op", nil))
}

func TestCodeForForeignError(t *testing.T) {
	assert.Equal(t, "INTERNAL_ERROR", Code(stderrors.New("boom")))
	assert.Equal(t, "LINKAGE_ERROR", Code(Linkage("engine.assemble", "loan 0 links property 3")))
}
