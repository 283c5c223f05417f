package validators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	AccountID string `json:"accountId,omitempty" validate:"required"`
	RootDir   string `mapstructure:"root_dir" validate:"required"`
	Plain     int    `validate:"min=1"`
}

func TestNew_ReportsWireFieldNames(t *testing.T) {
	t.Parallel()

	err := New().Struct(&payload{})
	require.Error(t, err)

	var fieldErrors ValidationErrors
	require.True(t, errors.As(err, &fieldErrors))

	var fields []string
	for _, fieldError := range fieldErrors {
		fields = append(fields, fieldError.Field())
	}
	assert.Equal(t, []string{"accountId", "root_dir", "Plain"}, fields)
	assert.Equal(t, "payload.AccountID", fieldErrors[0].StructNamespace())
}

func TestNew_Valid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, New().Struct(&payload{AccountID: "acc-1", RootDir: "./data", Plain: 1}))
}
