package cli

import (
	"fmt"
	"io"
	"strconv"

	"dispatch-console/internal/features/dispatch/domain"

	"github.com/olekukonko/tablewriter"
)

// renderDeliveries prints the filtered list, with the refresh error above it when the last refresh failed.
func renderDeliveries(w io.Writer, state domain.ListState, search string) error {
	if state.Err != nil {
		fmt.Fprintf(w, "! refresh failed: %v (showing last list)\n", state.Err)
	}
	if !state.RefreshedAt.IsZero() {
		fmt.Fprintf(w, "Updated %s\n", state.RefreshedAt.Format("15:04:05"))
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Cliente", "Retirada", "Entrega", "Valor", "Pagamento", "Situação")
	for _, d := range domain.FilterByCustomer(state.Deliveries, search) {
		if err := table.Append(
			strconv.FormatInt(d.ID, 10),
			d.CustomerName,
			d.PickupAddress,
			d.DropoffAddress,
			domain.FormatBRL(d.Value),
			d.PaymentMethod.Label(),
			d.Status.String(),
		); err != nil {
			return err
		}
	}
	return table.Render()
}

func renderCouriers(w io.Writer, couriers []domain.Courier) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Nome", "Telefone", "Ativo")
	for _, c := range couriers {
		active := "não"
		if c.Active {
			active = "sim"
		}
		if err := table.Append(strconv.FormatInt(c.ID, 10), c.Name, c.MaskedPhone(), active); err != nil {
			return err
		}
	}
	return table.Render()
}
