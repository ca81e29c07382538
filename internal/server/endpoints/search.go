package endpoints

import (
	"database/sql"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yeschef/hungie/internal/api"
	"github.com/yeschef/hungie/internal/store"
	"github.com/yeschef/hungie/internal/svcctx"
)

// SearchEndpoint handles GET /api/search.
type SearchEndpoint struct{}

func (e *SearchEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/search", e.handler
}

func (e *SearchEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Search recipes
//	@Description	Keyword search over recipe titles and ingredients
//	@Tags			recipes
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results (default 50)"
//	@Success		200	{array}		store.Recipe
//	@Failure		400	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/search [get]
func (e *SearchEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	st := svcctx.StoreFrom(r.Context())
	recipes, err := st.Search(r.Context(), q, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if recipes == nil {
		recipes = []store.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (e *SearchEndpoint) Command(getServerURL func() string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search stored recipes by keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := "/api/search?q=" + url.QueryEscape(args[0])
			if limit > 0 {
				path += "&limit=" + strconv.Itoa(limit)
			}
			var recipes []store.Recipe
			if err := client.Get(cmd.Context(), path, &recipes); err != nil {
				return err
			}
			return api.Output(recipes)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results")
	return cmd
}

// GetRecipeEndpoint handles GET /api/recipes/{id}.
type GetRecipeEndpoint struct{}

func (e *GetRecipeEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/recipes/{id}", e.handler
}

func (e *GetRecipeEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get recipe by ID
//	@Description	Get one stored recipe with full ingredients and instructions
//	@Tags			recipes
//	@Produce		json
//	@Param			id	path		string	true	"Recipe ID"
//	@Success		200	{object}	store.Recipe
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/recipes/{id} [get]
func (e *GetRecipeEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "recipe id is required")
		return
	}

	st := svcctx.StoreFrom(r.Context())
	recipe, err := st.GetRecipe(r.Context(), id)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func (e *GetRecipeEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "recipe <id>",
		Short: "Get a recipe by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var recipe store.Recipe
			if err := client.Get(cmd.Context(), "/api/recipes/"+args[0], &recipe); err != nil {
				return err
			}
			return api.Output(recipe)
		},
	}
}
