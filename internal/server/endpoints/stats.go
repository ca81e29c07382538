package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/yeschef/hungie/internal/api"
	"github.com/yeschef/hungie/internal/store"
	"github.com/yeschef/hungie/internal/svcctx"
)

// StatsEndpoint handles GET /api/stats.
type StatsEndpoint struct{}

func (e *StatsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/stats", e.handler
}

func (e *StatsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Database statistics
//	@Description	Row counts for books, recipes, TOC mappings, and the archive
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	store.Counts
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/stats [get]
func (e *StatsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	st := svcctx.StoreFrom(r.Context())
	counts, err := st.CountAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (e *StatsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var counts store.Counts
			if err := client.Get(cmd.Context(), "/api/stats", &counts); err != nil {
				return err
			}
			return api.Output(counts)
		},
	}
}
