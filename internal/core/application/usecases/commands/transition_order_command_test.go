package commands_test

import (
	"testing"

	"mes/internal/core/application/usecases/commands"
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()

	cmd, err := commands.NewTransitionOrderCommand(orderID, order.Processing)

	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, order.Processing, cmd.Status())
}

func TestNewTransitionOrderCommand_InvalidStatus(t *testing.T) {
	_, err := commands.NewTransitionOrderCommand(kernel.NewUUID(), order.Unknown)
	require.Error(t, err)
}

func TestNewTransitionOrderCommand_InvalidOrderID(t *testing.T) {
	var invalidID kernel.UUID

	_, err := commands.NewTransitionOrderCommand(invalidID, order.Processing)

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
