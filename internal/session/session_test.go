package session

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jaki95/yt-grabber/internal/downloader"
)

// Mock dependencies
type MockDownloader struct {
	mock.Mock
}

func (m *MockDownloader) Download(ctx context.Context, url string, audioOnly bool, dir string) (string, error) {
	args := m.Called(ctx, url, audioOnly, dir)
	return args.String(0), args.Error(1)
}

type MockOpener struct {
	mock.Mock
}

func (m *MockOpener) Open(dir string) error {
	return m.Called(dir).Error(0)
}

func newTestSession(dir, input string, dl Downloader, opener FolderOpener) (*Session, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Session{
		in:         bufio.NewReader(strings.NewReader(input)),
		out:        out,
		downloader: dl,
		opener:     opener,
		dir:        dir,
		mkdirAll:   os.MkdirAll,
	}, out
}

const testURL = "https://example.com/watch?v=abc"

func TestRunSingleVideoDownload(t *testing.T) {
	dir := t.TempDir()

	dl := new(MockDownloader)
	dl.On("Download", mock.Anything, testURL, false, dir).Return("", nil)

	opener := new(MockOpener)
	opener.On("Open", dir).Return(nil)

	// URL, keep path, video mode, stop
	s, out := newTestSession(dir, testURL+"\n\nv\nno\n", dl, opener)

	err := s.Run(context.Background())

	assert.NoError(t, err)
	dl.AssertExpectations(t)
	opener.AssertExpectations(t)
	assert.Contains(t, out.String(), "Download operations complete!")
	assert.Contains(t, out.String(), "Goodbye")
}

func TestRunAudioOnlyMode(t *testing.T) {
	dir := t.TempDir()

	dl := new(MockDownloader)
	dl.On("Download", mock.Anything, testURL, true, dir).Return(filepath.Join(dir, "track.mp3"), nil)

	opener := new(MockOpener)
	opener.On("Open", dir).Return(nil)

	s, out := newTestSession(dir, testURL+"\n\na\nno\n", dl, opener)

	err := s.Run(context.Background())

	assert.NoError(t, err)
	dl.AssertExpectations(t)
	assert.Contains(t, out.String(), "track.mp3")
}

func TestModePromptReprompts(t *testing.T) {
	dir := t.TempDir()

	dl := new(MockDownloader)
	dl.On("Download", mock.Anything, testURL, true, dir).Return("", nil)

	opener := new(MockOpener)
	opener.On("Open", dir).Return(nil)

	// Two invalid mode tokens, an empty one, then an uppercase accepted one
	s, out := newTestSession(dir, testURL+"\n\nx\nvideo\n\nA\nno\n", dl, opener)

	err := s.Run(context.Background())

	assert.NoError(t, err)
	dl.AssertExpectations(t)
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid input"))
}

func TestEmptyURLAbortsIteration(t *testing.T) {
	dir := t.TempDir()

	dl := new(MockDownloader)
	dl.On("Download", mock.Anything, testURL, false, dir).Return("", nil)

	opener := new(MockOpener)
	opener.On("Open", dir).Return(nil)

	// Empty URL first: no path/mode prompts, straight back to the start
	s, out := newTestSession(dir, "\n"+testURL+"\n\nv\nno\n", dl, opener)

	err := s.Run(context.Background())

	assert.NoError(t, err)
	dl.AssertNumberOfCalls(t, "Download", 1)
	assert.Contains(t, out.String(), "No URL entered")
}

func TestDirOverridePersists(t *testing.T) {
	defaultDir := t.TempDir()
	newDir := filepath.Join(t.TempDir(), "override")

	dl := new(MockDownloader)
	dl.On("Download", mock.Anything, testURL, false, newDir).Return("", nil).Twice()

	opener := new(MockOpener)
	opener.On("Open", newDir).Return(nil).Twice()

	// First iteration overrides the path, second keeps it with an empty entry
	input := fmt.Sprintf("%s\n%s\nv\nyes\n%s\n\nv\nno\n", testURL, newDir, testURL)
	s, _ := newTestSession(defaultDir, input, dl, opener)

	err := s.Run(context.Background())

	assert.NoError(t, err)
	dl.AssertExpectations(t)
	opener.AssertExpectations(t)
}

func TestStopTokens(t *testing.T) {
	for _, token := range []string{"no", "NO", "n", "N", "لا"} {
		t.Run(token, func(t *testing.T) {
			dir := t.TempDir()

			dl := new(MockDownloader)
			dl.On("Download", mock.Anything, testURL, false, dir).Return("", nil).Once()

			opener := new(MockOpener)
			opener.On("Open", dir).Return(nil)

			s, _ := newTestSession(dir, testURL+"\n\nv\n"+token+"\n", dl, opener)

			err := s.Run(context.Background())

			assert.NoError(t, err)
			dl.AssertNumberOfCalls(t, "Download", 1)
		})
	}
}

func TestNonStopAnswerContinues(t *testing.T) {
	dir := t.TempDir()

	dl := new(MockDownloader)
	dl.On("Download", mock.Anything, testURL, false, dir).Return("", nil).Twice()

	opener := new(MockOpener)
	opener.On("Open", dir).Return(nil).Twice()

	// "yes" and empty both restart the loop; stdin then closes
	input := testURL + "\n\nv\nyes\n" + testURL + "\n\nv\n"
	s, _ := newTestSession(dir, input, dl, opener)

	err := s.Run(context.Background())

	assert.NoError(t, err)
	dl.AssertExpectations(t)
}

func TestFolderCreationFailureSkipsDownload(t *testing.T) {
	dl := new(MockDownloader)
	opener := new(MockOpener)

	s, out := newTestSession(t.TempDir(), testURL+"\n\nv\n", dl, opener)
	s.mkdirAll = func(path string, perm os.FileMode) error {
		return errors.New("permission denied")
	}

	err := s.Run(context.Background())

	assert.NoError(t, err)
	dl.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Contains(t, out.String(), "Failed to create save folder")
}

func TestDownloadErrorIsDistinguished(t *testing.T) {
	dir := t.TempDir()

	dl := new(MockDownloader)
	dl.On("Download", mock.Anything, testURL, false, dir).
		Return("", fmt.Errorf("%w: video unavailable", downloader.ErrDownload))

	opener := new(MockOpener)

	s, out := newTestSession(dir, testURL+"\n\nv\nno\n", dl, opener)

	err := s.Run(context.Background())

	assert.NoError(t, err)
	opener.AssertNotCalled(t, "Open", mock.Anything)
	assert.Contains(t, out.String(), "Download failed. Check the URL")
	assert.NotContains(t, out.String(), "unexpected error")
}

func TestUnexpectedErrorIsGeneric(t *testing.T) {
	dir := t.TempDir()

	dl := new(MockDownloader)
	dl.On("Download", mock.Anything, testURL, false, dir).
		Return("", errors.New("disk full"))

	opener := new(MockOpener)

	s, out := newTestSession(dir, testURL+"\n\nv\nno\n", dl, opener)

	err := s.Run(context.Background())

	assert.NoError(t, err)
	opener.AssertNotCalled(t, "Open", mock.Anything)
	assert.Contains(t, out.String(), "An unexpected error occurred")
}

func TestOpenFolderFailureIsReported(t *testing.T) {
	dir := t.TempDir()

	dl := new(MockDownloader)
	dl.On("Download", mock.Anything, testURL, false, dir).Return("", nil)

	opener := new(MockOpener)
	opener.On("Open", dir).Return(errors.New("no file manager"))

	s, out := newTestSession(dir, testURL+"\n\nv\nno\n", dl, opener)

	err := s.Run(context.Background())

	// Open failures are reported but never end the loop
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Failed to open download folder")
	assert.Contains(t, out.String(), "Goodbye")
}
