package acs

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ian-campbell/acs-to-csv/pkg/utils"
)

// Downloader fetches the appendix workbook, the templates archive and the
// by-state summary archives. Files already present in the source
// directory are not fetched again; a failed download is logged and the
// run proceeds with whatever is on disk.
type Downloader struct {
	client  *http.Client
	baseURL string
}

func NewDownloader(baseURL string) *Downloader {
	d := new(Downloader)
	d.baseURL = baseURL
	d.client = &http.Client{Timeout: 3333 * time.Millisecond}
	return d
}

// URLs lists everything a run over the given states and level codes needs.
func (d *Downloader) URLs(cfg *Config) []string {
	classes := make(map[string]bool)
	for _, code := range cfg.LevelCodes() {
		classes[archiveClassFor(code)] = true
	}

	urls := []string{
		d.baseURL + "/documentation/tech_docs/" + cfg.AppendixFile(),
		d.baseURL + "/data/" + cfg.TemplatesFile(),
	}
	for _, state := range cfg.States {
		for class := range classes {
			urls = append(urls, d.baseURL+"/data/5_year_by_state/"+state+class)
		}
	}
	return urls
}

// FetchAll downloads every missing file into destDir.
func (d *Downloader) FetchAll(urls []string, destDir string) {
	for _, url := range urls {
		dest := filepath.Join(destDir, path.Base(url))
		if utils.PathExist(dest) {
			continue
		}
		logrus.WithField("url", url).Info("Requesting file")
		if err := d.fetch(url, dest); err != nil {
			logrus.WithError(err).WithField("url", url).Error("Download failed")
			continue
		}
		logrus.WithField("file", dest).Info("File downloaded successfully")
	}
}

func (d *Downloader) fetch(url, dest string) error {
	resp, err := d.client.Get(url)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return errors.New(fmt.Sprintf("unexpected status %s", resp.Status))
	}

	w, err := os.Create(dest)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		w.Close()
		os.Remove(dest)
		return errors.WithStack(err)
	}
	if err := w.Close(); err != nil {
		os.Remove(dest)
		return errors.WithStack(err)
	}
	return nil
}
