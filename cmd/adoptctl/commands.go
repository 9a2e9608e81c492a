package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"

	"adoptme-web/internal/domain/animals"
	"adoptme-web/internal/domain/metrics"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Entra com email e senha",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = a.password
			}
			email = strings.ToLower(strings.TrimSpace(email))
			if email == "" || password == "" {
				return errors.New("informe --email e --password (ou ADOPTME_PASSWORD)")
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			u, err := c.Login(sessionContext(cmd), email, password)
			if err != nil {
				return err
			}
			if a.asJSON {
				return printJSON(cmd.OutOrStdout(), u)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Olá, %s!\n", displayName(u.Name, u.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&password, "password", "", "senha")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Encerra a sessão",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			// Las credenciales locales se borran aunque el backend falle.
			if err := c.Logout(sessionContext(cmd)); err != nil {
				a.logger(cmd).Warn("backend logout failed", map[string]any{"error": err})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sessão encerrada.")
			return nil
		},
	}
}

func newMeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Mostra o usuário da sessão",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			u, err := c.Me(sessionContext(cmd))
			if err != nil {
				return friendly(err)
			}
			if a.asJSON {
				return printJSON(cmd.OutOrStdout(), u)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (id %s)\n", displayName(u.Name, u.Email), u.Email, u.ID.String())
			return nil
		},
	}
}

func newAnimalsCmd(a *app) *cobra.Command {
	var (
		tab  string
		opts filterFlags
	)
	cmd := &cobra.Command{
		Use:   "animals",
		Short: "Lista anúncios (all | mine | recs) com filtros",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runListing(cmd, animals.ParseTab(tab), opts.filter())
		},
	}
	cmd.Flags().StringVar(&tab, "tab", string(animals.TabAll), "all | mine | recs")
	opts.bind(cmd)
	return cmd
}

func newRecsCmd(a *app) *cobra.Command {
	var opts filterFlags
	cmd := &cobra.Command{
		Use:   "recs",
		Short: "Lista recomendados para você",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runListing(cmd, animals.TabRecs, opts.filter())
		},
	}
	opts.bind(cmd)
	return cmd
}

func (a *app) runListing(cmd *cobra.Command, tab animals.Tab, f animals.Filter) error {
	c, err := a.client()
	if err != nil {
		return err
	}
	ctx := sessionContext(cmd)

	u, err := c.Me(ctx)
	if err != nil {
		return friendly(err)
	}

	svc := animals.NewService(c, a.logger(cmd), animals.DefaultRecommendations)
	l, err := svc.Load(ctx, cliSessionID, u.ID.Int64())
	if err != nil {
		return err
	}
	view := animals.BuildView(l, tab, f, u.ID.Int64())

	if a.asJSON {
		return printJSON(cmd.OutOrStdout(), view)
	}
	return writeCards(cmd.OutOrStdout(), view)
}

func writeCards(w io.Writer, v animals.View) error {
	for _, e := range v.Errors {
		fmt.Fprintln(w, "aviso:", e)
	}
	if v.Count == 0 {
		_, err := fmt.Fprintln(w, "Nenhum animal encontrado.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOME\tESPÉCIE\tIDADE\tCIDADE\tSTATUS\tNOTAS")
	for _, c := range v.Items {
		status := "disponível"
		if c.Adopted {
			status = "adotado"
		}
		var notes []string
		if c.Mine {
			notes = append(notes, "meu")
		}
		if c.Recommended {
			notes = append(notes, "recomendado")
		}
		if c.RankLabel != "" {
			notes = append(notes, c.RankLabel)
		}
		if c.ContactURL != "" {
			notes = append(notes, c.ContactURL)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Animal.ID.String(), c.Animal.Name, c.Animal.Species, string(c.Animal.Age),
			c.Animal.City, status, strings.Join(notes, ", "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d animal(is)\n", v.Count)
	return err
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Exclui um anúncio seu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd, "Excluir anúncio?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelado.")
				return nil
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			svc := animals.NewService(c, a.logger(cmd), 0)
			if err := svc.Delete(sessionContext(cmd), cliSessionID, id, true); err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Anúncio %d excluído.\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "não pedir confirmação")
	return cmd
}

func newAdoptCmd(a *app) *cobra.Command {
	var yes, undo bool
	cmd := &cobra.Command{
		Use:   "adopt ID",
		Short: "Marca (ou desfaz com --undo) a adoção de um anúncio seu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			action, prompt := animals.AdoptMark, "Marcar como adotado?"
			if undo {
				action, prompt = animals.AdoptUndo, "Desfazer adoção?"
			}
			if !yes && !confirm(cmd, prompt) {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelado.")
				return nil
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			svc := animals.NewService(c, a.logger(cmd), 0)
			out, err := svc.ToggleAdopt(sessionContext(cmd), cliSessionID, id, action, true)
			if err != nil {
				return friendly(err)
			}
			if a.asJSON {
				return printJSON(cmd.OutOrStdout(), out)
			}
			if out.Adopted() {
				fmt.Fprintf(cmd.OutOrStdout(), "Anúncio %d marcado como adotado.\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Anúncio %d disponível de novo.\n", id)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "não pedir confirmação")
	cmd.Flags().BoolVar(&undo, "undo", false, "desfazer adoção")
	return cmd
}

func newMetricsCmd(a *app) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Resumo do catálogo e adoções por dia",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			ctx := sessionContext(cmd)
			svc := metrics.NewService(c, a.logger(cmd))

			days = metrics.ClampDays(days)
			sum, sumDegraded := svc.Summary(ctx)
			chart, chartDegraded := svc.AdoptionChart(ctx, days)

			if a.asJSON {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"resumo":   sum,
					"adocoes":  chart,
					"degraded": sumDegraded || chartDegraded,
				})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Total: %d  Adotados: %d  Disponíveis: %d  Bons com crianças: %d\n",
				sum.Total, sum.Adopted, sum.Available, sum.GoodWithKids)
			for _, s := range sum.Species {
				fmt.Fprintf(w, "  %-14s %4d  %3d%%\n", s.Species, s.Count, s.Percent)
			}
			fmt.Fprintf(w, "%s (últimos %d dias)\n", chart.Series, days)
			for _, p := range chart.Points {
				fmt.Fprintf(w, "  %s %s %d\n", p.Label, strings.Repeat("#", int(p.Count)), p.Count)
			}
			if sumDegraded || chartDegraded {
				fmt.Fprintln(w, "aviso: métricas indisponíveis no momento")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", metrics.DefaultDays, "janela em dias (1-90)")
	return cmd
}

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Mostra o perfil de adotante",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			p, found, err := c.GetProfile(sessionContext(cmd))
			if err != nil {
				return friendly(err)
			}
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), "Perfil ainda não preenchido.")
				return nil
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}

type filterFlags struct {
	species, age, size, city string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.species, "especie", "", "espécie")
	cmd.Flags().StringVar(&f.age, "idade", "", "filhote | adulto | idoso")
	cmd.Flags().StringVar(&f.size, "porte", "", "porte")
	cmd.Flags().StringVar(&f.city, "cidade", "", "cidade (substring)")
}

func (f *filterFlags) filter() animals.Filter {
	q := url.Values{
		"especie": {f.species},
		"idade":   {f.age},
		"porte":   {f.size},
		"cidade":  {f.city},
	}
	return animals.ParseFilter(q)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido: %q", s)
	}
	return id, nil
}

// confirm lee s/sim/y/yes de stdin; cualquier otra cosa es no.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [s/N] ", prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

func displayName(name, email string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return email
}
