package services

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/client/repositories/files"
	"github.com/dmitrijs2005/docvault/internal/client/repositories/kv"
	"github.com/dmitrijs2005/docvault/internal/client/share"
	"github.com/dmitrijs2005/docvault/internal/common"
	"github.com/dmitrijs2005/docvault/internal/filex"
	"github.com/dmitrijs2005/docvault/internal/logging"
)

const (
	documentsKeyPrefix = "documents_"
	shareStagingName   = "temp_share_file"
)

// now is the clock used for creation timestamps and file names.
var now = time.Now

// Identity reports the active session.
type Identity interface {
	Current() (models.Session, bool)
}

// DocumentService manages the active user's documents and their companion
// files.
//
// Every mutation loads the whole partition, changes it in memory and writes
// it back. Concurrent mutations on the same partition are not serialized:
// the last write wins.
type DocumentService interface {
	List(ctx context.Context) ([]models.Document, error)
	Get(ctx context.Context, id string) (models.Document, error)
	Add(ctx context.Context, draft models.Draft) (models.Document, error)
	Delete(ctx context.Context, id string) error
	Share(ctx context.Context, id string) error

	// Documents returns the last loaded or mutated partition.
	Documents() []models.Document
	// Reset forgets the in-memory partition, e.g. after logout.
	Reset()
}

type documentService struct {
	identity Identity
	store    kv.Repository
	files    files.Storage
	sharer   share.Sharer
	cacheDir string
	log      logging.Logger

	mu     sync.Mutex
	mirror []models.Document
}

// NewDocumentService wires the document store. cacheDir receives files
// staged for sharing.
func NewDocumentService(identity Identity, store kv.Repository, fs files.Storage,
	sharer share.Sharer, cacheDir string, log logging.Logger) DocumentService {
	return &documentService{
		identity: identity,
		store:    store,
		files:    fs,
		sharer:   sharer,
		cacheDir: cacheDir,
		log:      log,
	}
}

func partitionKey(userID string) string {
	return documentsKeyPrefix + userID
}

func (s *documentService) load(ctx context.Context, userID string) ([]models.Document, error) {
	b, err := s.store.Get(ctx, partitionKey(userID))
	if err != nil {
		return nil, storageErr("load documents", err)
	}
	docs := []models.Document{}
	if b == nil {
		return docs, nil
	}
	if err := json.Unmarshal(b, &docs); err != nil {
		return nil, storageErr("decode documents", err)
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}

func (s *documentService) persist(ctx context.Context, userID string, docs []models.Document) error {
	return saveJSON(ctx, s.store, partitionKey(userID), docs)
}

func (s *documentService) setMirror(docs []models.Document) {
	s.mu.Lock()
	s.mirror = slices.Clone(docs)
	s.mu.Unlock()
}

func (s *documentService) List(ctx context.Context) ([]models.Document, error) {
	session, ok := s.identity.Current()
	if !ok {
		s.setMirror(nil)
		return []models.Document{}, nil
	}

	docs, err := s.load(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	s.setMirror(docs)
	return docs, nil
}

func (s *documentService) Get(ctx context.Context, id string) (models.Document, error) {
	session, ok := s.identity.Current()
	if !ok {
		return models.Document{}, common.ErrNotFound
	}

	docs, err := s.load(ctx, session.ID)
	if err != nil {
		return models.Document{}, err
	}
	for _, d := range docs {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Document{}, common.ErrNotFound
}

func validateDraft(d models.Draft) (models.Draft, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return d, fmt.Errorf("%w: document name is required", common.ErrInvalidInput)
	}
	if d.File.URI == "" {
		return d, fmt.Errorf("%w: a file is required", common.ErrInvalidInput)
	}
	if d.Type == "" {
		d.Type = models.DocumentTypeOther
	}
	if !d.Type.Valid() {
		return d, fmt.Errorf("%w: unknown document type %q", common.ErrInvalidInput, d.Type)
	}
	return d, nil
}

// Add copies the draft's file into the user's storage area and appends the
// new record to the partition. The partition is written only after the copy
// succeeded, and the copy is removed again if that write fails.
func (s *documentService) Add(ctx context.Context, draft models.Draft) (models.Document, error) {
	session, ok := s.identity.Current()
	if !ok {
		return models.Document{}, common.ErrUnauthenticated
	}

	draft, err := validateDraft(draft)
	if err != nil {
		return models.Document{}, err
	}

	docs, err := s.load(ctx, session.ID)
	if err != nil {
		return models.Document{}, err
	}

	if _, err := s.files.EnsureUserDir(ctx, session.ID); err != nil {
		return models.Document{}, storageErr("prepare documents dir", err)
	}

	created := now().UTC()
	name := fmt.Sprintf("%d.%s", created.UnixMilli(), filex.Ext(draft.File.Name))
	uri, err := s.files.Import(ctx, session.ID, draft.File.URI, name)
	if err != nil {
		return models.Document{}, storageErr("copy file", err)
	}

	file := draft.File
	file.URI = uri
	doc := models.Document{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		Type:        draft.Type,
		File:        file,
		CreatedAt:   created,
		UserID:      session.ID,
	}

	docs = append(docs, doc)
	if err := s.persist(ctx, session.ID, docs); err != nil {
		if rerr := s.files.Remove(ctx, uri); rerr != nil {
			s.log.Warn(ctx, "failed to remove copied file", "uri", uri, "error", rerr)
		}
		return models.Document{}, err
	}

	s.setMirror(docs)
	s.log.Debug(ctx, "document added", "doc_id", doc.ID, "uri", uri)
	return doc, nil
}

// Delete removes the record and its companion file. A file that cannot be
// removed is logged and does not fail the call.
func (s *documentService) Delete(ctx context.Context, id string) error {
	session, ok := s.identity.Current()
	if !ok {
		return common.ErrUnauthenticated
	}

	docs, err := s.load(ctx, session.ID)
	if err != nil {
		return err
	}

	i := slices.IndexFunc(docs, func(d models.Document) bool { return d.ID == id })
	if i < 0 {
		return common.ErrNotFound
	}

	uri := docs[i].File.URI
	if err := s.files.Remove(ctx, uri); err != nil {
		s.log.Warn(ctx, "failed to delete file", "doc_id", id, "uri", uri, "error", err)
	}

	docs = slices.Delete(docs, i, i+1)
	if err := s.persist(ctx, session.ID, docs); err != nil {
		return err
	}

	s.setMirror(docs)
	s.log.Debug(ctx, "document deleted", "doc_id", id)
	return nil
}

// Share hands the document's file to the configured sharer. Files that do
// not live in local private storage are first staged in the cache directory.
func (s *documentService) Share(ctx context.Context, id string) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if s.sharer == nil || !s.sharer.Available(ctx) {
		return common.ErrSharingUnavailable
	}

	path, ok := s.files.LocalPath(doc.File.URI)
	if !ok {
		path, err = s.stage(ctx, doc.File.URI)
		if err != nil {
			return err
		}
	}

	err = s.sharer.Share(ctx, share.Request{
		Path:  path,
		Name:  doc.File.Name,
		MIME:  doc.File.Type,
		Title: "Share " + doc.Name,
	})
	if err != nil {
		return fmt.Errorf("share document: %w", err)
	}
	return nil
}

func (s *documentService) stage(ctx context.Context, uri string) (string, error) {
	rc, err := s.files.Open(ctx, uri)
	if err != nil {
		return "", storageErr("open file", err)
	}
	defer rc.Close()

	dir, err := filex.EnsureDir(s.cacheDir)
	if err != nil {
		return "", storageErr("prepare cache dir", err)
	}

	path := filepath.Join(dir, shareStagingName+"."+filex.Ext(uri))
	if _, err := filex.WriteFile(path, rc, 0o600); err != nil {
		return "", storageErr("stage file", err)
	}
	return path, nil
}

func (s *documentService) Documents() []models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.mirror)
}

func (s *documentService) Reset() {
	s.setMirror(nil)
}
