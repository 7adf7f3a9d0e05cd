package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/parcerias-admin/internal/application/dto"
	"github.com/jhoicas/parcerias-admin/internal/application/partnership"
	infrapdf "github.com/jhoicas/parcerias-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/parcerias-admin/pkg/cnpj"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var search, status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista parcerias com filtros de busca e status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.services()
			if err != nil {
				return err
			}
			ctrl := partnership.NewListController(svc.List)
			ctrl.SetSearchTerm(search)
			ctrl.SetStatusFilter(status)
			if err := ctrl.Fetch(cmd.Context()); err != nil {
				return fmt.Errorf("Erro ao carregar parcerias: %w", err)
			}
			view := ctrl.Snapshot()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tOSC\tLOJA\tINÍCIO\tATUALIZAÇÃO\tSTATUS\tCAMPANHA")
			for _, p := range view.Filtered {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\n",
					p.ID, p.OSC, p.Loja,
					infrapdf.FormatDate(p.DataInicio), infrapdf.FormatDate(p.DataVencimento),
					p.Status, p.Campanhas)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nAtivas: %d  Inativas: %d  Pendentes: %d  Total: %d\n",
				view.Stats.Ativas, view.Stats.Inativas, view.Stats.Pendentes, view.Stats.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "busca por nome da OSC ou da loja")
	cmd.Flags().StringVar(&status, "status", partnership.StatusFilterAll, "all | ativa | inativa | pendente")
	return cmd
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var in dto.CreatePartnershipRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Cria uma parceria pendente a partir de CNPJ, código da loja e ID da campanha",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := opts.services()
			if err != nil {
				return err
			}
			res, err := svc.Form.Submit(cmd.Context(), opts.actor, in)
			if err != nil {
				return errors.New(svc.Form.ErrorMessage())
			}
			p := res.Partnership
			fmt.Fprintf(cmd.OutOrStdout(), "Parceria #%d criada: %s / %s (%s)\n", p.ID, p.OSC, p.Loja, p.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.OSCCNPJ, "cnpj", "", "CNPJ da OSC (com ou sem máscara)")
	cmd.Flags().StringVar(&in.StoreCode, "store", "", "código da loja")
	cmd.Flags().StringVar(&in.CampaignID, "campaign", "", "ID da campanha")
	return cmd
}

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Alterna o status de uma parceria entre ativa e inativa",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("id inválido %q", args[0])
			}
			svc, err := opts.services()
			if err != nil {
				return err
			}
			ctrl := partnership.NewListController(svc.List)
			if err := ctrl.Fetch(cmd.Context()); err != nil {
				return fmt.Errorf("Erro ao carregar parcerias: %w", err)
			}
			p, ok := ctrl.Find(id)
			if !ok {
				return fmt.Errorf("parceria %d não encontrada", id)
			}
			changed, err := ctrl.ToggleStatus(cmd.Context(), opts.actor, p)
			if err != nil {
				return fmt.Errorf("Erro ao atualizar status da parceria: %w", err)
			}
			// el estado vigente sale de la relectura o del refetch, no de la carga inicial
			current, _ := ctrl.Find(id)
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "Parceria #%d está %s; status não alterado\n", id, current.Status)
				return nil
			}
			if msg := ctrl.Snapshot().Error; msg != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Parceria #%d: status alterado (erro ao recarregar: %s)\n", id, msg)
				return nil
			}
			from, _ := current.Status.Toggled()
			fmt.Fprintf(cmd.OutOrStdout(), "Parceria #%d: %s -> %s\n", id, from, current.Status)
			return nil
		},
	}
}

func newCNPJCmd() *cobra.Command {
	cnpjCmd := &cobra.Command{
		Use:   "cnpj",
		Short: "Utilitários de CNPJ",
	}
	cnpjCmd.AddCommand(&cobra.Command{
		Use:   "format <valor>",
		Short: "Aplica a máscara 00.000.000/0000-00 e verifica o CNPJ",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := args[0]
			fmt.Fprintln(cmd.OutOrStdout(), cnpj.Format(value))
			if !cnpj.HasValidLength(value) {
				fmt.Fprintln(cmd.OutOrStdout(), "CNPJ da OSC deve conter 14 dígitos.")
				return nil
			}
			if !cnpj.HasValidCheckDigits(value) {
				fmt.Fprintln(cmd.OutOrStdout(), "dígitos verificadores inválidos")
			}
			return nil
		},
	})
	return cnpjCmd
}
