package github

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

var (
	BaseURL = "https://api.github.com"
	Client  = &http.Client{Timeout: time.Second * 5}
)

type Release struct {
	Version string `json:"tag_name"`
	ZipUrl  string `json:"zipball_url"`
	URL     string `json:"html_url"`
}

func FetchLatestRelease(repo string, client *http.Client) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", BaseURL, repo)
	resp, err := client.Get(url)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Error fetching release information from the GitHub API: %s", resp.Status)
	}

	release := &Release{}
	if err := json.NewDecoder(resp.Body).Decode(release); err != nil {
		return nil, err
	}

	return release, nil
}
