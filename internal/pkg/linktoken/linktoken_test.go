//go:build unit

package linktoken_test

import (
	"testing"
	"time"

	"tablebook/internal/pkg/linktoken"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkToken_RoundTrip(t *testing.T) {
	svc := linktoken.NewService("secret", time.Hour)
	resID := uuid.New()

	token, err := svc.Issue(resID, linktoken.ActionCancel, 0)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token, linktoken.ActionCancel)
	require.NoError(t, err)
	assert.Equal(t, resID, claims.ReservationID)
	assert.Equal(t, linktoken.ActionCancel, claims.Action)
}

func TestLinkToken_WrongAction(t *testing.T) {
	svc := linktoken.NewService("secret", time.Hour)

	token, err := svc.Issue(uuid.New(), linktoken.ActionCancel, time.Hour)
	require.NoError(t, err)

	_, err = svc.Verify(token, linktoken.ActionReschedule)
	assert.ErrorIs(t, err, linktoken.ErrWrongAction)
}

func TestLinkToken_Expired(t *testing.T) {
	svc := linktoken.NewService("secret", time.Hour)

	token, err := svc.Issue(uuid.New(), linktoken.ActionCancel, -time.Minute)
	require.NoError(t, err)

	_, err = svc.Verify(token, linktoken.ActionCancel)
	assert.ErrorIs(t, err, linktoken.ErrExpiredToken)
}

func TestLinkToken_WrongSecret(t *testing.T) {
	issuer := linktoken.NewService("secret-a", time.Hour)
	verifier := linktoken.NewService("secret-b", time.Hour)

	token, err := issuer.Issue(uuid.New(), linktoken.ActionCancel, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token, linktoken.ActionCancel)
	assert.ErrorIs(t, err, linktoken.ErrInvalidToken)
}
