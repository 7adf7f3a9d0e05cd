package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/parcerias-admin/internal/application/audit"
	"github.com/jhoicas/parcerias-admin/internal/application/partnership"
	"github.com/jhoicas/parcerias-admin/internal/infrastructure/lock"
	"github.com/jhoicas/parcerias-admin/internal/infrastructure/upstream"
	"github.com/jhoicas/parcerias-admin/pkg/config"
	"github.com/jhoicas/parcerias-admin/pkg/logger"
)

// services casos de uso que usan los subcomandos.
type services struct {
	List partnership.ListDeps
	Form *partnership.CreateForm
}

// serviceFactory construye los servicios la primera vez que un subcomando los pide.
type serviceFactory func() (*services, error)

type rootOptions struct {
	actor   string
	factory serviceFactory
	svc     *services
}

func (o *rootOptions) services() (*services, error) {
	if o.svc != nil {
		return o.svc, nil
	}
	svc, err := o.factory()
	if err != nil {
		return nil, err
	}
	o.svc = svc
	return svc, nil
}

func newRootCmd(factory serviceFactory) *cobra.Command {
	opts := &rootOptions{factory: factory}

	root := &cobra.Command{
		Use:          "parceriasctl",
		Short:        "Administra parcerias entre OSCs, lojas e campanhas",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.actor, "actor", defaultActor(), "operador registrado en logs y auditoría")

	root.AddCommand(
		newListCmd(opts),
		newCreateCmd(opts),
		newToggleCmd(opts),
		newCNPJCmd(),
	)
	return root
}

func defaultActor() string {
	if u := os.Getenv("USER"); u != "" {
		return "cli:" + u
	}
	return "cli"
}

// defaultServices arma los servicios desde la configuración del entorno (mismas variables que la API).
// El candado de toggles es de proceso: la CLI hace un solo cambio por ejecución.
func defaultServices() (*services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: os.Stderr})

	client := upstream.NewClient(upstream.Config{
		BaseURL:          cfg.Upstream.BaseURL,
		APIToken:         cfg.Upstream.APIToken,
		Timeout:          cfg.Upstream.Timeout,
		MaxResponseBytes: cfg.Upstream.MaxResponseBytes,
	}, nil)
	gateway := upstream.NewPartnershipGateway(client, cfg.Upstream.StatusEncoding)
	directory := upstream.NewDirectoryGateway(client)
	recorder := audit.NewRecorder(nil, log)

	createUC := partnership.NewCreatePartnershipUseCase(partnership.CreatePartnershipDeps{
		OSCs:         directory,
		Stores:       directory,
		Campaigns:    directory,
		Partnerships: gateway,
		Audit:        recorder,
		Logger:       log,
	})
	return &services{
		List: partnership.ListDeps{
			Lister:  gateway,
			Updater: gateway,
			Locks:   lock.NewMemoryRowLock(),
			Audit:   recorder,
			Logger:  log,
		},
		Form: partnership.NewCreateForm(createUC),
	}, nil
}
