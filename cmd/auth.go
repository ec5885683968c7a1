package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/lox/notionctl/internal/api"
	"github.com/lox/notionctl/internal/config"
	"github.com/lox/notionctl/internal/output"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/term"
)

const internalIntegrationsURL = "https://www.notion.so/profile/integrations/internal"

type AuthCmd struct {
	Setup  AuthSetupCmd  `cmd:"" help:"Set up the Notion API token"`
	Status AuthStatusCmd `cmd:"" default:"withargs" help:"Show API token status"`
	Verify AuthVerifyCmd `cmd:"" help:"Verify the API token"`
	Unset  AuthUnsetCmd  `cmd:"" help:"Remove the saved API token"`
}

type AuthSetupCmd struct {
	Token    string `help:"Notion API token (optional; skips token input prompt)" name:"api-token"`
	NoVerify bool   `help:"Save token without verifying it against the Notion API" name:"no-verify"`
	OpenDocs bool   `help:"Open integration setup docs in browser before setup" name:"open-docs"`
}

func (c *AuthSetupCmd) Run(ctx *Context) error {
	err := runAuthSetup(authSetupOptions{
		Token:    c.Token,
		NoVerify: c.NoVerify,
		OpenDocs: c.OpenDocs,
	})
	if err != nil {
		return fail(ctx.renderer(), err)
	}
	return nil
}

type AuthStatusCmd struct {
	JSON bool `help:"Output as JSON" short:"j"`
}

func (c *AuthStatusCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	r := ctx.renderer()

	fileCfg, err := config.LoadFile()
	if err != nil {
		return fail(r, err)
	}
	effectiveCfg, err := config.Load()
	if err != nil {
		return fail(r, err)
	}
	path, err := config.Path()
	if err != nil {
		return fail(r, err)
	}

	tokenSource := config.ResolveTokenSource(fileCfg)
	configured := strings.TrimSpace(effectiveCfg.API.Token) != ""

	status := orderedmap.New[string, any]()
	status.Set("configured", configured)
	status.Set("token_source", string(tokenSource))
	status.Set("config_path", path)
	status.Set("base_url", effectiveCfg.API.BaseURL)
	status.Set("notion_version", effectiveCfg.API.NotionVersion)

	if ctx.JSON {
		return r.Result(status)
	}

	w := ctx.stdout()
	if configured {
		fmt.Fprintln(w, "API token is configured")
	} else {
		fmt.Fprintln(w, "API token is not configured. Run 'notion auth setup'.")
	}
	fmt.Fprintf(w, "Source:         %s\n", tokenSource)
	fmt.Fprintf(w, "Config path:    %s\n", path)
	fmt.Fprintf(w, "API base URL:   %s\n", effectiveCfg.API.BaseURL)
	fmt.Fprintf(w, "Notion version: %s\n", effectiveCfg.API.NotionVersion)
	if tokenSource == config.TokenFromEnv {
		fmt.Fprintf(w, "Token comes from %s and is not persisted in config.\n", config.EnvToken)
	}
	return nil
}

type AuthVerifyCmd struct {
	Token string `help:"Notion API token to verify (defaults to configured token)" name:"api-token"`
	JSON  bool   `help:"Output as JSON" short:"j"`
}

func (c *AuthVerifyCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	r := ctx.renderer()

	cfg, err := config.Load()
	if err != nil {
		return fail(r, err)
	}

	token := strings.TrimSpace(c.Token)
	if token == "" {
		token = strings.TrimSpace(cfg.API.Token)
	}
	if token == "" {
		return fail(r, &output.UserError{Message: "API token is not configured. Run 'notion auth setup' first."})
	}

	client, err := api.NewClient(cfg.API, token)
	if err != nil {
		return fail(r, err)
	}
	user, err := client.VerifyToken(context.Background())
	if err != nil {
		return fail(r, err)
	}

	return r.Success("API token is valid", map[string]any{
		"bot_id": user.Str("id"),
		"name":   user.Str("name"),
	})
}

type AuthUnsetCmd struct {
	JSON bool `help:"Output as JSON" short:"j"`
}

func (c *AuthUnsetCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	r := ctx.renderer()

	fileCfg, err := config.LoadFile()
	if err != nil {
		return fail(r, err)
	}
	path, err := config.Path()
	if err != nil {
		return fail(r, err)
	}

	hadToken := strings.TrimSpace(fileCfg.API.Token) != ""
	fileCfg.API.Token = ""
	if err := config.Save(fileCfg); err != nil {
		return fail(r, err)
	}

	message := "No saved API token was set"
	if hadToken {
		message = "Removed saved API token"
	}
	if err := r.Success(message, map[string]any{
		"had_token":   hadToken,
		"config_path": path,
	}); err != nil {
		return err
	}
	if !ctx.JSON && config.EnvTokenSet() {
		output.PrintWarning(config.EnvToken + " is still set in your environment and will override config.")
	}
	return nil
}

type authSetupOptions struct {
	Token    string
	NoVerify bool
	OpenDocs bool
}

func runAuthSetup(opts authSetupOptions) error {
	if opts.OpenDocs {
		if err := openBrowserURL(internalIntegrationsURL); err != nil {
			output.PrintWarning(fmt.Sprintf("Could not open browser automatically: %v", err))
		}
	}

	cfgEffective, err := config.Load()
	if err != nil {
		return err
	}
	cfgFile, err := config.LoadFile()
	if err != nil {
		return err
	}

	token := strings.TrimSpace(opts.Token)
	if token == "" {
		if !isInteractiveTerminal() {
			return &output.UserError{Message: "Token input requires a terminal. Pass --api-token or set NOTION_API_TOKEN."}
		}
		token, err = promptForToken()
		if err != nil {
			if errors.Is(err, errAuthSetupCancelled) {
				output.PrintInfo("API token setup cancelled")
				return nil
			}
			return err
		}
	}

	if !opts.NoVerify {
		client, err := api.NewClient(cfgEffective.API, token)
		if err != nil {
			return err
		}
		if _, err := client.VerifyToken(context.Background()); err != nil {
			return err
		}
	}

	cfgFile.API.BaseURL = cfgEffective.API.BaseURL
	cfgFile.API.NotionVersion = cfgEffective.API.NotionVersion
	cfgFile.API.Token = token
	if err := config.Save(cfgFile); err != nil {
		return err
	}

	output.PrintSuccess("API token saved")
	if !opts.NoVerify {
		output.PrintSuccess("API token verified")
	}
	return nil
}

func isInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func openBrowserURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
