package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/docvault/internal/client/fileinfo"
	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/client/picker"
	"github.com/dmitrijs2005/docvault/internal/common"
	"github.com/dmitrijs2005/docvault/internal/filex"
)

// pickFile, scanFile and pageCount are test seams for the file collaborators.
var (
	pickFile  = picker.Pick
	scanFile  = picker.Scan
	pageCount = fileinfo.PageCount
)

const dateLayout = "2006-01-02 15:04"

// List prints the active user's documents, newest last.
func (a *App) List(ctx context.Context) error {
	docs, err := a.documentService.List(ctx)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(a.out, "No documents yet. Use 'add' or 'scan' to add one.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tNAME\tFILE\tADDED")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.Type.Label(), d.Name,
			fileinfo.Label(d.File.Type, d.File.Name),
			d.CreatedAt.Local().Format(dateLayout))
	}
	return tw.Flush()
}

// Show prints one document with its file details.
func (a *App) Show(ctx context.Context, id string) error {
	d, err := a.documentService.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s\n", d.Name)
	fmt.Fprintf(a.out, "  Type:        %s\n", d.Type.Label())
	if d.Description != "" {
		fmt.Fprintf(a.out, "  Description: %s\n", d.Description)
	}
	fmt.Fprintf(a.out, "  Added:       %s\n", d.CreatedAt.Local().Format(dateLayout))

	file := fmt.Sprintf("%s [%s] %s", d.File.Name, fileinfo.Icon(d.File.Type, d.File.Name), d.File.Type)
	if size := fileinfo.FormatSize(d.File.Size); size != "" {
		file += " • " + size
	}
	fmt.Fprintf(a.out, "  File:        %s\n", file)
	fmt.Fprintf(a.out, "  Kind:        %s\n", fileinfo.Label(d.File.Type, d.File.Name))

	if fileinfo.IsPDF(d.File.Type) && filex.Exists(d.File.URI) {
		if n, err := pageCount(d.File.URI); err == nil {
			fmt.Fprintf(a.out, "  Pages:       %d\n", n)
		} else {
			a.log.Debug(ctx, "page count failed", "doc_id", d.ID, "error", err)
		}
	}
	return nil
}

// Add prompts for a local file and the document details.
func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrUnauthenticated
	}
	path, err := getSimpleText(a.reader, "Path to the file", a.out)
	if err != nil {
		return err
	}
	ref, err := pickFile(path)
	if err != nil {
		return err
	}
	return a.addDocument(ctx, ref)
}

// Scan prompts for an image capture and the document details.
func (a *App) Scan(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrUnauthenticated
	}
	path, err := getSimpleText(a.reader, "Path to the captured image", a.out)
	if err != nil {
		return err
	}
	ref, err := scanFile(path)
	if err != nil {
		return err
	}
	return a.addDocument(ctx, ref)
}

func (a *App) addDocument(ctx context.Context, ref models.FileRef) error {
	name, err := getSimpleText(a.reader, "Document name", a.out)
	if err != nil {
		return err
	}

	labels := make([]string, 0, len(models.DocumentTypes))
	for _, t := range models.DocumentTypes {
		labels = append(labels, string(t))
	}
	typ, err := getSimpleText(a.reader, fmt.Sprintf("Document type [%s] (default Other)", strings.Join(labels, ", ")), a.out)
	if err != nil {
		return err
	}
	docType, err := models.ParseDocumentType(typ)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
	}

	desc, err := getMultiline(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}

	start := time.Now()
	d, err := a.documentService.Add(ctx, models.Draft{
		Name:        name,
		Description: desc,
		Type:        docType,
		File:        ref,
	})
	if err != nil {
		return err
	}

	a.log.Debug(ctx, "document stored", "doc_id", d.ID, "took", time.Since(start))
	fmt.Fprintf(a.out, "Added %q (%s)\n", d.Name, d.ID)
	return nil
}

// Delete asks for confirmation and removes the document.
func (a *App) Delete(ctx context.Context, id string) error {
	d, err := a.documentService.Get(ctx, id)
	if err != nil {
		return err
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete %q? [y/N]", d.Name), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		return errAborted
	}

	if err := a.documentService.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

func (a *App) Share(ctx context.Context, id string) error {
	if err := a.documentService.Share(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Shared")
	return nil
}
