// Package api implements the file-management endpoints on top of the parsed
// request boundary: prime check, upload, rename, remove and download.
package api

import (
	"errors"
	"log/slog"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/keremenci/fileserv/filestore"
	"github.com/keremenci/fileserv/http"
	"github.com/keremenci/fileserv/http/form"
	"github.com/keremenci/fileserv/http/status"
	"github.com/keremenci/fileserv/router/table"
)

type API struct {
	store *filestore.Store
	log   *slog.Logger
}

func New(store *filestore.Store, log *slog.Logger) *API {
	return &API{
		store: store,
		log:   log,
	}
}

// Attach registers all endpoints on the router.
func (a *API) Attach(r *table.Router) *table.Router {
	return r.
		Get("isPrime", a.IsPrime).
		Post("upload", a.Upload).
		Put("rename", a.Rename).
		Delete("remove", a.Remove).
		Get("download", a.Download)
}

type message struct {
	Message string `json:"message"`
}

// IsPrime reports whether the number query parameter is prime.
func (a *API) IsPrime(request *http.Request) *http.Response {
	number, err := strconv.Atoi(request.Params.Value("number"))
	if err != nil {
		return http.NewResponse().
			Code(status.BadRequest).
			JSON(message{Message: "Invalid parameter"})
	}

	return http.NewResponse().JSON(struct {
		Number  int  `json:"number"`
		IsPrime bool `json:"isPrime"`
	}{
		Number:  number,
		IsPrime: isPrime(number),
	})
}

// Upload stores every file part of a multipart/form-data body. Files without
// an extension get one guessed from the part's media type; name collisions
// are resolved by numbering.
func (a *API) Upload(request *http.Request) *http.Response {
	contentType := request.ContentType()
	if !strings.Contains(contentType, "multipart/form-data") {
		return http.NewResponse().
			Code(status.BadRequest).
			JSON(message{Message: "An error occurred"})
	}

	boundary, found := form.Boundary(contentType)
	if !found {
		return http.NewResponse().Error(status.ErrMalformedMultipart)
	}

	parts, err := form.Parse(request.Body, boundary)
	if err != nil {
		return http.NewResponse().Error(err)
	}

	type upload struct {
		Message    string `json:"message"`
		UploadPath string `json:"uploadpath"`
	}

	var uploads []upload

	for _, part := range parts {
		filename := part.Filename()
		if len(filename) == 0 {
			continue
		}

		// guess an extension only for files that arrive without one; a
		// present extension is trusted as is
		if filepath.Ext(filename) == "" {
			if ext := filestore.Extension(part.ContentType()); len(ext) > 0 {
				filename += ext
			}
		}

		stored, err := a.store.Save(filename, part.Payload)
		if err != nil {
			a.log.Error("upload failed", "filename", filename, "error", err)
			return http.NewResponse().Error(status.ErrInternalServerError)
		}

		text := "Successfully uploaded file"
		if stored != filename {
			text = "Successfully uploaded and renamed file as a file with the same name already exists"
		}

		a.log.Debug("file stored", "filename", stored, "bytes", len(part.Payload))
		uploads = append(uploads, upload{
			Message:    text,
			UploadPath: path.Join(path.Base(a.store.Dir()), stored),
		})
	}

	if len(uploads) == 0 {
		return http.NewResponse().
			Code(status.BadRequest).
			JSON(message{Message: "An error occurred"})
	}
	if len(uploads) == 1 {
		return http.NewResponse().JSON(uploads[0])
	}

	return http.NewResponse().JSON(uploads)
}

// Rename renames a stored file using oldFileName and newName query
// parameters.
func (a *API) Rename(request *http.Request) *http.Response {
	oldName, oldOK := request.Params.Get("oldFileName")
	newName, newOK := request.Params.Get("newName")
	if !oldOK || !newOK {
		return http.NewResponse().
			Code(status.BadRequest).
			JSON(message{Message: "Invalid parameters"})
	}

	if err := a.store.Rename(oldName, newName); err != nil {
		return a.fileError(err)
	}

	base := path.Base(a.store.Dir())

	return http.NewResponse().JSON(struct {
		Message string `json:"message"`
		OldPath string `json:"oldpath"`
		NewPath string `json:"newpath"`
	}{
		Message: "Filename successfully changed",
		OldPath: path.Join(base, oldName),
		NewPath: path.Join(base, newName),
	})
}

// Remove deletes a stored file named by the fileName query parameter.
func (a *API) Remove(request *http.Request) *http.Response {
	name, found := request.Params.Get("fileName")
	if !found {
		return http.NewResponse().
			Code(status.BadRequest).
			JSON(message{Message: "Missing filename parameter"})
	}

	if err := a.store.Remove(name); err != nil {
		return a.fileError(err)
	}

	return http.NewResponse().JSON(struct {
		Message  string `json:"message"`
		FilePath string `json:"filepath"`
	}{
		Message:  "File successfully deleted",
		FilePath: path.Join(path.Base(a.store.Dir()), name),
	})
}

// Download serves a stored file as an attachment.
func (a *API) Download(request *http.Request) *http.Response {
	name, found := request.Params.Get("fileName")
	if !found {
		return http.NewResponse().
			Code(status.BadRequest).
			JSON(message{Message: "Missing filename parameter"})
	}

	payload, info, err := a.store.Read(name)
	if err != nil {
		return a.fileError(err)
	}

	contentType := filestore.MIME(info.Name())
	if len(contentType) == 0 {
		contentType = "application/octet-stream"
	}

	return http.NewResponse().
		Header("Content-Disposition", `attachment; filename="`+info.Name()+`"`).
		Header("Content-Type", contentType).
		Header("Content-Transfer-Encoding", "binary").
		Header("Content-Length", strconv.FormatInt(info.Size(), 10)).
		Bytes(payload)
}

// fileError keeps the original API contract: a missing file is reported as
// 200 with a "File Not Found" message, anything else is a plain 500.
func (a *API) fileError(err error) *http.Response {
	if errors.Is(err, filestore.ErrNotFound) {
		return http.NewResponse().JSON(message{Message: "File Not Found"})
	}

	a.log.Error("file operation failed", "error", err)
	return http.NewResponse().Error(status.ErrInternalServerError)
}

// isPrime runs trial division up to the square root. Numbers below 2 aren't
// prime.
func isPrime(n int) bool {
	if n < 2 {
		return false
	}

	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}

	return true
}
