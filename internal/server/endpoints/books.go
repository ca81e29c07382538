package endpoints

import (
	"database/sql"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/yeschef/hungie/internal/api"
	"github.com/yeschef/hungie/internal/store"
	"github.com/yeschef/hungie/internal/svcctx"
)

// ListBooksEndpoint handles GET /api/books.
type ListBooksEndpoint struct{}

func (e *ListBooksEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/books", e.handler
}

func (e *ListBooksEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List books
//	@Description	List all processed cookbook PDFs
//	@Tags			books
//	@Produce		json
//	@Success		200	{array}		store.Book
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/books [get]
func (e *ListBooksEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	st := svcctx.StoreFrom(r.Context())
	books, err := st.ListBooks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if books == nil {
		books = []store.Book{}
	}
	writeJSON(w, http.StatusOK, books)
}

func (e *ListBooksEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List processed books",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var books []store.Book
			if err := client.Get(cmd.Context(), "/api/books", &books); err != nil {
				return err
			}
			return api.Output(books)
		},
	}
}

// GetBookEndpoint handles GET /api/books/{id}.
type GetBookEndpoint struct{}

func (e *GetBookEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/books/{id}", e.handler
}

func (e *GetBookEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get book by ID
//	@Description	Get detailed information about a book
//	@Tags			books
//	@Produce		json
//	@Param			id	path		string	true	"Book ID"
//	@Success		200	{object}	store.Book
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/books/{id} [get]
func (e *GetBookEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "book id is required")
		return
	}

	st := svcctx.StoreFrom(r.Context())
	book, err := st.GetBook(r.Context(), id)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (e *GetBookEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "book <id>",
		Short: "Get a book by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var book store.Book
			if err := client.Get(cmd.Context(), "/api/books/"+args[0], &book); err != nil {
				return err
			}
			return api.Output(book)
		},
	}
}

// BookRecipesEndpoint handles GET /api/books/{id}/recipes.
type BookRecipesEndpoint struct{}

func (e *BookRecipesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/books/{id}/recipes", e.handler
}

func (e *BookRecipesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List a book's recipes
//	@Description	List all recipes extracted from one book, page-ordered
//	@Tags			books
//	@Produce		json
//	@Param			id	path		string	true	"Book ID"
//	@Success		200	{array}		store.Recipe
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/books/{id}/recipes [get]
func (e *BookRecipesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "book id is required")
		return
	}

	st := svcctx.StoreFrom(r.Context())
	if _, err := st.GetBook(r.Context(), id); err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "book not found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	recipes, err := st.RecipesForBook(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if recipes == nil {
		recipes = []store.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (e *BookRecipesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "book-recipes <id>",
		Short: "List recipes extracted from a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var recipes []store.Recipe
			if err := client.Get(cmd.Context(), "/api/books/"+args[0]+"/recipes", &recipes); err != nil {
				return err
			}
			return api.Output(recipes)
		},
	}
}

// PurgeBookRecipesEndpoint handles DELETE /api/books/{id}/recipes.
type PurgeBookRecipesEndpoint struct{}

func (e *PurgeBookRecipesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/books/{id}/recipes", e.handler
}

func (e *PurgeBookRecipesEndpoint) RequiresInit() bool { return true }

// PurgeResponse reports how many recipes a purge archived.
type PurgeResponse struct {
	Archived int `json:"archived"`
}

// handler godoc
//
//	@Summary		Purge a book's recipes
//	@Description	Archive and remove all recipes extracted from one book, so the book can be re-extracted
//	@Tags			books
//	@Produce		json
//	@Param			id	path		string	true	"Book ID"
//	@Success		200	{object}	PurgeResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/books/{id}/recipes [delete]
func (e *PurgeBookRecipesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "book id is required")
		return
	}

	st := svcctx.StoreFrom(r.Context())
	if _, err := st.GetBook(r.Context(), id); err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "book not found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	archived, err := st.PurgeBookRecipes(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, PurgeResponse{Archived: archived})
}

func (e *PurgeBookRecipesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "purge-book <id>",
		Short: "Archive and remove a book's recipes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp PurgeResponse
			if err := client.Delete(cmd.Context(), "/api/books/"+args[0]+"/recipes", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// BookTOCMapEndpoint handles GET /api/books/{id}/tocmap.
type BookTOCMapEndpoint struct{}

func (e *BookTOCMapEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/books/{id}/tocmap", e.handler
}

func (e *BookTOCMapEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List a book's TOC mappings
//	@Description	List the table-of-contents title-to-page resolutions recorded for one book
//	@Tags			books
//	@Produce		json
//	@Param			id	path		string	true	"Book ID"
//	@Success		200	{array}		store.TOCMapping
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/books/{id}/tocmap [get]
func (e *BookTOCMapEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "book id is required")
		return
	}

	st := svcctx.StoreFrom(r.Context())
	if _, err := st.GetBook(r.Context(), id); err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "book not found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	mappings, err := st.TOCMappingsForBook(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if mappings == nil {
		mappings = []store.TOCMapping{}
	}
	writeJSON(w, http.StatusOK, mappings)
}

func (e *BookTOCMapEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "book-tocmap <id>",
		Short: "List a book's TOC mappings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var mappings []store.TOCMapping
			if err := client.Get(cmd.Context(), "/api/books/"+args[0]+"/tocmap", &mappings); err != nil {
				return err
			}
			return api.Output(mappings)
		},
	}
}
