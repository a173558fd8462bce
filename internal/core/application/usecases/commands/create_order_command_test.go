package commands_test

import (
	"testing"

	"expressia/internal/core/application/usecases/commands"
	"expressia/internal/core/domain/model/kernel"
	"expressia/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	dims := order.Dimensions{Length: 30, Width: 20, Height: 10}

	t.Run("should create a valid command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "Guatemala", "Costa Rica", 2.5, dims, order.ModalityExpress, "Documentos", nil)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
	})

	t.Run("should reject a missing origin", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "", "Costa Rica", 2.5, dims, order.ModalityExpress, "", nil)

		require.ErrorIs(t, err, commands.ErrOriginIsRequired)
	})

	t.Run("should reject a missing destination", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "Guatemala", "", 2.5, dims, order.ModalityExpress, "", nil)

		require.ErrorIs(t, err, commands.ErrDestinationIsRequired)
	})

	t.Run("should reject a non positive weight", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "Guatemala", "Costa Rica", 0, dims, order.ModalityExpress, "", nil)

		require.ErrorIs(t, err, commands.ErrWeightIsInvalid)
	})

	t.Run("should reject an unknown modality", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), "Guatemala", "Costa Rica", 2.5, dims, order.ModalityUnknown, "", nil)

		require.Error(t, err)
	})

	t.Run("should fail validation for a zero value command", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
