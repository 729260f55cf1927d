package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepsFor(t *testing.T) {
	assert.Nil(t, StepsFor(nil), "no steps without a session")
	assert.Equal(t, []Step{StepConfirm}, StepsFor(&User{ID: "u1", Subscribed: true}))
	assert.Equal(t, []Step{StepPayment, StepConfirm}, StepsFor(&User{ID: "u1"}))
}

func TestAdvanceRequiresGatewayOnPaymentStep(t *testing.T) {
	s := NewSession(&User{ID: "u1"})

	err := s.Advance()
	require.ErrorIs(t, err, ErrNoGatewaySelected)
	assert.Equal(t, 0, s.StepIndex(), "refused transition leaves the step unchanged")

	require.NoError(t, s.SelectGateway("razorpay"))
	require.NoError(t, s.Advance())
	assert.True(t, s.AtConfirm())
}

func TestAdvanceIsNoopOnTerminalStep(t *testing.T) {
	s := NewSession(&User{ID: "u1", Subscribed: true})
	require.True(t, s.AtConfirm())

	require.NoError(t, s.Advance())
	assert.True(t, s.AtConfirm())
}

func TestBackClampsAtFirstStep(t *testing.T) {
	s := NewSession(&User{ID: "u1"})
	require.NoError(t, s.SelectGateway("razorpay"))
	require.NoError(t, s.Advance())

	s.Back()
	assert.Equal(t, 0, s.StepIndex())
	s.Back()
	assert.Equal(t, 0, s.StepIndex())
}

func TestUnauthenticatedSessionHasNoSteps(t *testing.T) {
	s := NewSession(nil)

	_, ok := s.Current()
	assert.False(t, ok)
	assert.ErrorIs(t, s.Advance(), ErrAuthRequired)
	assert.ErrorIs(t, s.SelectGateway("razorpay"), ErrAuthRequired)
}

func TestGiftInterstitialBeforeCompletion(t *testing.T) {
	s := NewSession(&User{ID: "u1"})

	s.MarkComplete(true)
	assert.True(t, s.GiftPending())
	assert.False(t, s.Completed())

	s.AcknowledgeGift()
	assert.False(t, s.GiftPending())
	assert.True(t, s.Completed())
}

func TestResetRestoresFreshSession(t *testing.T) {
	s := NewSession(&User{ID: "u1"})
	require.NoError(t, s.SelectGateway("razorpay"))
	require.NoError(t, s.Advance())
	s.MarkComplete(false)

	s.Reset()

	fresh := NewSession(&User{ID: "u1"})
	assert.Equal(t, fresh.StepIndex(), s.StepIndex())
	assert.Equal(t, fresh.Gateway(), s.Gateway())
	assert.Equal(t, fresh.Completed(), s.Completed())
	assert.Equal(t, fresh.GiftPending(), s.GiftPending())
}
