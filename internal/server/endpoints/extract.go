package endpoints

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/yeschef/hungie/internal/api"
	"github.com/yeschef/hungie/internal/extract"
	"github.com/yeschef/hungie/internal/svcctx"
)

// ExtractRequest asks the server to run extraction on a server-side PDF.
type ExtractRequest struct {
	Path      string `json:"path"`
	Ruleset   string `json:"ruleset,omitempty"`
	BookTitle string `json:"bookTitle,omitempty"`
	DryRun    bool   `json:"dryRun,omitempty"`
}

// ExtractEndpoint handles POST /api/extract. The run is synchronous; the
// response is the run's statistics.
type ExtractEndpoint struct{}

func (e *ExtractEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/extract", e.handler
}

func (e *ExtractEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Run extraction
//	@Description	Extract recipes from a PDF on the server's filesystem
//	@Tags			extract
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ExtractRequest	true	"Extraction request"
//	@Success		200	{object}	extract.RunStats
//	@Failure		400	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/extract [post]
func (e *ExtractEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}
	if _, err := os.Stat(req.Path); err != nil {
		writeError(w, http.StatusBadRequest, "pdf not found: "+req.Path)
		return
	}

	svcs := svcctx.ServicesFrom(r.Context())
	name := req.Ruleset
	if name == "" {
		name = svcs.ConfigMgr.Get().Extract.DefaultRuleset
	}
	rules, ok := svcs.Rulesets.Get(name)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown ruleset: "+name)
		return
	}

	p := extract.New(svcs.Store, rules, svcs.Logger)
	stats, err := p.Run(r.Context(), req.Path, extract.Options{
		BookTitle: req.BookTitle,
		DryRun:    req.DryRun,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (e *ExtractEndpoint) Command(getServerURL func() string) *cobra.Command {
	var rulesetName, bookTitle string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "extract <server-pdf-path>",
		Short: "Run extraction on a PDF already on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			req := ExtractRequest{
				Path:      args[0],
				Ruleset:   rulesetName,
				BookTitle: bookTitle,
				DryRun:    dryRun,
			}
			var stats extract.RunStats
			if err := client.Post(cmd.Context(), "/api/extract", req, &stats); err != nil {
				return err
			}
			return api.Output(stats)
		},
	}
	cmd.Flags().StringVar(&rulesetName, "ruleset", "", "Ruleset to extract with")
	cmd.Flags().StringVar(&bookTitle, "book-title", "", "Override the book title")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run without persisting anything")
	return cmd
}
