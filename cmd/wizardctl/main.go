package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/bluegilltech/pca-wizard/api"
	"github.com/bluegilltech/pca-wizard/api/clients"
	"github.com/bluegilltech/pca-wizard/api/postsetup"
	"github.com/bluegilltech/pca-wizard/cmd/flags"
	"github.com/bluegilltech/pca-wizard/interfaces"
	"github.com/bluegilltech/pca-wizard/wizardconfig"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:   "wizardctl",
		Usage:  "Run and inspect the Premium App wizard post-install hook",
		Writer: stdout,
		Flags:  append([]cli.Flag{flags.WizardConfigFlag, flags.LogServiceFlagFn("wizardctl")}, flags.LogFlags...),
		Commands: []*cli.Command{
			{
				Name:  "configure",
				Usage: "Notify the deployment backend of an installation",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "installed-data",
						Required: true,
						Usage:    "JSON file with installed objects (type -> name -> attributes)",
					},
					&cli.StringFlag{
						Name:     "user",
						Required: true,
						Usage:    "JSON file with the operator and organization",
					},
					&cli.StringFlag{
						Name:     "platform",
						Required: true,
						Usage:    `JSON file with the platform session ({"config": {"environment", "basePath", "authUrl"}})`,
					},
					&cli.StringFlag{
						Name:    "deploy-addr",
						Value:   api.DefaultDeployServerAddr,
						EnvVars: []string{"PCA_DEPLOY_ADDR"},
						Usage:   "deployment backend address",
					},
				},
				Action: configureAction,
			},
			{
				Name:  "permissions",
				Usage: "Print the permissions and OAuth scopes the wizard needs",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "uninstall",
						Usage: "list what uninstalling needs instead",
					},
				},
				Action: permissionsAction,
			},
			{
				Name:  "registration",
				Usage: "Show what the deployment backend recorded for an organization",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "org-id",
						Required: true,
						Usage:    "organization id",
					},
					&cli.StringFlag{
						Name:    "deploy-addr",
						Value:   api.DefaultDeployServerAddr,
						EnvVars: []string{"PCA_DEPLOY_ADDR"},
						Usage:   "deployment backend address",
					},
				},
				Action: registrationAction,
			},
			{
				Name:   "catalog",
				Usage:  "Print the objects the wizard provisions",
				Action: catalogAction,
			},
		},
	}
}

func loadConfig(cCtx *cli.Context) (*wizardconfig.WizardConfig, error) {
	if path := cCtx.String(flags.WizardConfigFlag.Name); path != "" {
		return wizardconfig.Load(path)
	}
	return wizardconfig.Default()
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("could not decode %s: %w", path, err)
	}
	return nil
}

func configureAction(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)

	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	var installed interfaces.InstalledObjects
	if err := readJSON(cCtx.String("installed-data"), &installed); err != nil {
		return err
	}
	var user *interfaces.UserContext
	if err := readJSON(cCtx.String("user"), &user); err != nil {
		return err
	}
	var session *interfaces.PlatformSession
	if err := readJSON(cCtx.String("platform"), &session); err != nil {
		return err
	}

	notifier := postsetup.NewNotifier(cfg.ProvisioningInfo, postsetup.NewDeployClient(cCtx.String("deploy-addr")), logger)
	outcome := notifier.Configure(cCtx.Context, func(msg string) { logger.Info(msg) }, installed, user, session)

	out, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	fmt.Fprintln(cCtx.App.Writer, string(out))

	if !outcome.Status {
		return cli.Exit("", 1)
	}
	return nil
}

func permissionsAction(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}
	install := !cCtx.Bool("uninstall")

	keys := []interfaces.ObjectType{interfaces.PermissionKeyWizard}
	if cfg.EnableCustomSetupStepAfterInstall {
		keys = append(keys, interfaces.PermissionKeyPostCustomSetup)
	}
	keys = append(keys, cfg.ProvisioningInfo.Types()...)

	rows := make([][]string, 0, len(keys)+1)
	for _, k := range keys {
		rows = append(rows, []string{
			string(k),
			strings.Join(cfg.PermissionsFor(k, install), "\n"),
			strings.Join(cfg.ScopesFor(k, install), "\n"),
		})
	}
	rows = append(rows, []string{
		"(all)",
		strings.Join(cfg.RequiredPermissions(install), "\n"),
		strings.Join(cfg.RequiredScopes(install), "\n"),
	})

	fmt.Fprintln(cCtx.App.Writer, renderTable([]string{"Type", "Permissions", "Scopes"}, rows))
	return nil
}

func registrationAction(cCtx *cli.Context) error {
	client := &clients.RegistrationClient{ServerAddr: cCtx.String("deploy-addr")}
	registration, err := client.Registration(cCtx.Context, cCtx.String("org-id"))
	if err != nil {
		return err
	}

	rows := [][]string{
		{"Organization", registration.OrgName + " (" + registration.OrgID + ")"},
		{"Requestor", registration.RequestorName + " <" + registration.RequestorEmail + ">"},
		{"Environment", registration.APIEnvironment},
		{"OAuth client", registration.OAuthClientID},
		{"Open messaging", registration.OpenMessagingIntegrationID},
		{"Request", registration.RequestID},
		{"Provisioned at", registration.ProvisionedAt},
	}
	fmt.Fprintln(cCtx.App.Writer, renderTable([]string{"Field", "Value"}, rows))
	return nil
}

func catalogAction(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, objectType := range cfg.ProvisioningInfo.Types() {
		for _, tmpl := range cfg.ProvisioningInfo[objectType] {
			rows = append(rows, []string{string(objectType), tmpl.Name, cfg.Prefix + tmpl.Name, tmpl.Description})
		}
	}

	fmt.Fprintln(cCtx.App.Writer, renderTable([]string{"Type", "Name", "Created As", "Description"}, rows))
	return nil
}
