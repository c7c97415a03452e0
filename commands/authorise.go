package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"golang.org/x/oauth2"
	"golang.org/x/sys/execabs"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	gsheets "github.com/luisdasilva-contact/Parent-Spreadsheet-Editor/google"
)

var AuthoriseCmd = Authorise{
	command: baseCommand,
}

type Authorise struct {
	command
}

var authorised = template.Must(template.New("authorised").Parse(`<!DOCTYPE html>
<html>
  <head><title>{{.App}}</title></head>
  <body style="font-family: sans-serif">
    {{if .Error}}
    <p>Authorisation failed: {{.Error}}</p>
    {{else}}
    <p>{{.App}} has been authorised to access Google Sheets and Google Drive. You can close this window.</p>
    {{end}}
  </body>
</html>
`))

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises parent-sheets to access Google Sheets and Google Drive"
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file>"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options]\n", APP)
	fmt.Println()
	fmt.Println("  Runs the OAuth2 consent flow in a browser and stores the resulting tokens in the work directory.")
	fmt.Println("  The credentials file is the OAuth2 'Desktop app' client downloaded from the Google Cloud console.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s authorise --credentials \"credentials.json\"\n", APP)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *pflag.FlagSet {
	return cmd.flagset("authorise")
}

func (cmd *Authorise) Execute(ctx context.Context, options *Options) error {
	cmd.configure(options)

	if cmd.credentials == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	token, err := cmd.authenticate(ctx)
	if err != nil {
		return fmt.Errorf("authorisation error (%v)", err)
	} else if token == nil {
		return nil
	}

	tokens := cmd.tokens()
	if err := saveToken(tokens, token); err != nil {
		return err
	}

	infof("saved authorisation tokens to %v", tokens)

	// ... check the tokens are usable
	client, err := authorize(ctx, cmd.credentials, tokens)
	if err != nil {
		return err
	}

	d, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return err
	}

	s, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return err
	}

	if actor, err := gsheets.NewDrive(d, s).Actor(ctx); err != nil {
		return err
	} else {
		fmt.Printf("  authorised as %v\n", actor)
	}

	return nil
}

// authenticate runs the OAuth2 'loopback' flow: a local HTTP server receives the authorisation
// code once the user has granted access in the browser. Returns a nil token if cancelled.
func (cmd *Authorise) authenticate(ctx context.Context) (*oauth2.Token, error) {
	config, err := oauthConfig(cmd.credentials)
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	config.RedirectURL = fmt.Sprintf("http://localhost:%d/", listener.Addr().(*net.TCPAddr).Port)

	state, err := nonce()
	if err != nil {
		return nil, err
	}

	codes := make(chan string, 1)
	errors := make(chan error, 1)
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, rq *http.Request) {
		page := map[string]any{
			"App":   APP,
			"Error": "",
		}

		code := rq.FormValue("code")

		switch {
		case rq.FormValue("state") != state:
			page["Error"] = "invalid state"
		case rq.FormValue("error") != "":
			page["Error"] = rq.FormValue("error")
		case code == "":
			page["Error"] = "missing authorisation code"
		}

		if err := authorised.Execute(w, page); err != nil {
			http.Error(w, "Error formatting page", http.StatusInternalServerError)
		}

		if page["Error"] != "" {
			select {
			case errors <- fmt.Errorf("%v", page["Error"]):
			default:
			}
		} else {
			select {
			case codes <- code:
			default:
			}
		}
	})

	srv := &http.Server{
		Handler: mux,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			warnf("%v", err)
		}
	}()

	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			warnf("%v", err)
		}
	}()

	// ... CTRL-C handler
	interrupt := make(chan os.Signal, 1)

	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	// ... open OAuth2 URL in browser
	url := config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	if err := execabs.Command(BROWSER, url).Start(); err != nil {
		debugf("%v %v (%v)", BROWSER, url, err)
	}

	fmt.Println()
	fmt.Println("  If the authorisation page did not open in your browser, please open this URL manually:")
	fmt.Println()
	fmt.Printf("    %v\n", url)
	fmt.Println()

	// ... wait for authorisation
	select {
	case <-interrupt:
		fmt.Printf("\n.. cancelled\n\n")
		return nil, nil

	case <-ctx.Done():
		return nil, ctx.Err()

	case err := <-errors:
		return nil, err

	case code := <-codes:
		return config.Exchange(ctx, code)
	}
}

func nonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
