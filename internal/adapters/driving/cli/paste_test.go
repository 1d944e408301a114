package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mdpaste/internal/core/domain"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 1, 2, 3}

// writeDoc creates a saved document and returns its path.
func writeDoc(t *testing.T, dir string) string {
	t.Helper()
	doc := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(doc, []byte("# Notes\n"), 0o644))
	return doc
}

func writeImage(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func expectedDest(data []byte) string {
	return "./notes_assets/" + domain.IdentityOf(data).FileName("png")
}

func expectedRef(data []byte, ext string) string {
	return "![](./notes_assets/" + domain.IdentityOf(data).FileName(ext) + ")"
}

func TestPasteCmd_Use(t *testing.T) {
	assert.Equal(t, "paste DOCUMENT [IMAGE...]", pasteCmd.Use)
}

func TestPasteCmd_HasFlags(t *testing.T) {
	for _, name := range []string{"uri-list", "clipboard", "stdin-mime", "inline", "append"} {
		assert.NotNil(t, pasteCmd.Flags().Lookup(name), "%s flag should exist", name)
	}
}

func TestPasteCmd_RequiresDocument(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	_, _, err := executeCommand("paste")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestPasteCmd_DroppedFile(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	dir := t.TempDir()
	doc := writeDoc(t, dir)
	img := writeImage(t, t.TempDir(), "shot.PNG", pngBytes)

	stdout, _, err := executeCommand("paste", doc, img)

	require.NoError(t, err)
	assert.Equal(t, expectedRef(pngBytes, "png")+"\n", stdout)
	assert.FileExists(t, filepath.Join(dir, "notes_assets", domain.IdentityOf(pngBytes).FileName("png")))

	content, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, "# Notes\n", string(content), "document untouched without --append")
}

func TestPasteCmd_Append(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	dir := t.TempDir()
	doc := writeDoc(t, dir)
	img := writeImage(t, dir, "a.png", pngBytes)

	_, _, err := executeCommand("paste", "--append", doc, img)
	require.NoError(t, err)

	content, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, "# Notes\n"+expectedRef(pngBytes, "png")+"\n", string(content))
}

func TestPasteCmd_SameImageTwiceReusesAsset(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	dir := t.TempDir()
	doc := writeDoc(t, dir)
	first := writeImage(t, dir, "a.png", pngBytes)
	second := writeImage(t, t.TempDir(), "copy.png", pngBytes)

	out1, _, err := executeCommand("paste", doc, first)
	require.NoError(t, err)
	out2, _, err := executeCommand("paste", doc, second)
	require.NoError(t, err)

	assert.Equal(t, out1, out2)
	entries, err := os.ReadDir(filepath.Join(dir, "notes_assets"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPasteCmd_InlineMatchesFileIdentity(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	dir := t.TempDir()
	doc := writeDoc(t, dir)
	img := writeImage(t, t.TempDir(), "pic.png", pngBytes)

	stdout, _, err := executeCommand("paste", "--inline", img, doc)

	require.NoError(t, err)
	assert.Equal(t, expectedRef(pngBytes, "png")+"\n", stdout)
}

func TestPasteCmd_StdinImageWinsOverFiles(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	dir := t.TempDir()
	doc := writeDoc(t, dir)
	img := writeImage(t, dir, "other.gif", []byte("GIF89a"))
	jpeg := []byte{0xff, 0xd8, 0xff, 0xe0}

	rootCmd.SetIn(bytes.NewReader(jpeg))
	stdout, _, err := executeCommand("paste", "--stdin-mime", "image/jpeg", doc, img)

	require.NoError(t, err)
	assert.Equal(t, expectedRef(jpeg, "jpg")+"\n", stdout)
}

func TestPasteCmd_StdinMIMEMustBeImage(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	rootCmd.SetIn(bytes.NewReader(pngBytes))
	_, _, err := executeCommand("paste", "--stdin-mime", "image/tiff", writeDoc(t, t.TempDir()))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPasteCmd_StdinCannotServeTwoInputs(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	rootCmd.SetIn(bytes.NewReader(pngBytes))
	_, _, err := executeCommand("paste", "--stdin-mime", "image/png", "--uri-list", "-", writeDoc(t, t.TempDir()))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPasteCmd_URIListFile(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	dir := t.TempDir()
	doc := writeDoc(t, dir)
	img := writeImage(t, dir, "a.png", pngBytes)
	list := writeImage(t, dir, "uris.txt", []byte(
		"# copied\r\n"+domain.FileURI(img)+"\r\n"+domain.FileURI(filepath.Join(dir, "doc.pdf"))+"\r\n"))

	stdout, _, err := executeCommand("paste", "--uri-list", list, doc)

	require.NoError(t, err)
	assert.Equal(t, expectedRef(pngBytes, "png")+"\n", stdout)
}

func TestPasteCmd_URIListStdin(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	dir := t.TempDir()
	doc := writeDoc(t, dir)
	img := writeImage(t, dir, "a.webp", pngBytes)

	rootCmd.SetIn(bytes.NewReader([]byte(domain.FileURI(img) + "\n")))
	stdout, _, err := executeCommand("paste", "--uri-list", "-", doc)

	require.NoError(t, err)
	assert.Equal(t, expectedRef(pngBytes, "webp")+"\n", stdout)
}

func TestPasteCmd_Clipboard(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	dir := t.TempDir()
	doc := writeDoc(t, dir)
	img := writeImage(t, dir, "a.jpeg", pngBytes)
	clipboardReader = &mockClipboard{text: img + "\n"}

	stdout, _, err := executeCommand("paste", "--clipboard", doc)

	require.NoError(t, err)
	assert.Equal(t, expectedRef(pngBytes, "jpeg")+"\n", stdout)
}

func TestPasteCmd_ClipboardError(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	clipboardReader = &mockClipboard{err: errors.New("no display")}

	_, _, err := executeCommand("paste", "--clipboard", writeDoc(t, t.TempDir()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
}

func TestPasteCmd_NoImagesFallsThrough(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	dir := t.TempDir()
	doc := writeDoc(t, dir)
	pdf := writeImage(t, dir, "doc.pdf", []byte("%PDF"))

	stdout, stderr, err := executeCommand("paste", doc, pdf)

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "No images to paste.")
	assert.NoDirExists(t, filepath.Join(dir, "notes_assets"))
}

func TestPasteCmd_UnsavedDocumentWarns(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()

	img := writeImage(t, t.TempDir(), "a.png", pngBytes)

	stdout, stderr, err := executeCommand("paste", "untitled:Untitled-1", img)

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "must be saved")
}

func TestPasteCmd_FailureReturnsError(t *testing.T) {
	mock := &mockPasteService{err: domain.ErrAssetWrite}
	cleanup := setupTestServices(t, mock)
	defer cleanup()

	stdout, _, err := executeCommand("paste", "/tmp/notes.md", "/tmp/a.png")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAssetWrite)
	assert.Contains(t, err.Error(), "paste failed")
	assert.Empty(t, stdout)
}

func TestPasteCmd_PayloadShape(t *testing.T) {
	mock := &mockPasteService{result: &domain.PasteResult{Markdown: "x"}}
	cleanup := setupTestServices(t, mock)
	defer cleanup()

	_, _, err := executeCommand("paste", "/tmp/notes.md", "file:///tmp/a.png", "/tmp/b.jpg")
	require.NoError(t, err)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, filepath.Clean("/tmp/notes.md"), reqs[0].DocumentPath)

	entries := reqs[0].Payload.Entries()
	require.Len(t, entries, 2)
	for i, want := range []string{"/tmp/a.png", "/tmp/b.jpg"} {
		assert.Equal(t, domain.FilesMIMEType, entries[i].Key)
		handle, ok := entries[i].Item.File()
		require.True(t, ok)
		origin, ok := handle.Origin()
		require.True(t, ok, "dropped files carry a file origin")
		assert.Equal(t, domain.FileURI(filepath.Clean(want)), origin)
	}
}

func TestPasteCmd_NoService(t *testing.T) {
	cleanup := setupTestServices(t, nil)
	defer cleanup()
	pasteService = nil

	_, _, err := executeCommand("paste", "/tmp/notes.md")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "paste service not configured")
}

func TestResolveDocument(t *testing.T) {
	abs, err := filepath.Abs("notes.md")
	require.NoError(t, err)

	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"empty is unsaved", "", ""},
		{"untitled is unsaved", "untitled:Untitled-1", ""},
		{"remote URI is unsaved", "https://example.com/notes.md", ""},
		{"file URI", "file:///proj/notes.md", filepath.Clean("/proj/notes.md")},
		{"relative path", "notes.md", abs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveDocument(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
