package accounts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/feraben-crm/internal/domain"
)

func TestParseQueryDate(t *testing.T) {
	got, err := parseQueryDate("desde", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseQueryDate("desde", "2024-03-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2024-03-01", got.Format(dateLayout))

	_, err = parseQueryDate("hasta", "01/03/2024")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "hasta", verr.Field)
}
