package battlelog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	// DefaultBaseURL is the Battlelog BF4 API root every endpoint
	// path is resolved against.
	DefaultBaseURL = "https://battlelog.battlefield.com/bf4"

	// Hostname is the host the session cookies must belong to.
	Hostname = "battlelog.battlefield.com"
)

var (
	// ErrForbidden is returned when Battlelog answers 403, usually an
	// IP block or a cookie without access to the requested profile.
	ErrForbidden = errors.New("access forbidden")

	// ErrReportsHidden is returned when the report list response has
	// no gameReports section, meaning the soldier hides their battle
	// report history.
	ErrReportsHidden = errors.New("battle reports are hidden by user")
)

// fetch performs one authenticated GET against a Battlelog endpoint
// and returns the raw response body.
func (arc *Archiver) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	resp, err := arc.downloadFile(ctx, arc.BaseURL+endpoint)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%s: %w", endpoint, ErrForbidden)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%s: unexpected status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", endpoint, err)
	}

	return body, nil
}

// fetchJSON fetches an endpoint and decodes the body into v. The raw
// body is returned as well so it can be saved without modification.
func (arc *Archiver) fetchJSON(ctx context.Context, endpoint string, v interface{}) ([]byte, error) {
	body, err := arc.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", endpoint, err)
	}

	return body, nil
}

func userEndpoint(profileName string) string {
	return "/user/" + profileName + "/"
}

func platoonEndpoint(clubID string) string {
	return "/platoons/view/" + clubID + "/"
}

func weaponStatsEndpoint(personaID string) string {
	return "/warsawWeaponsPopulateStats/" + personaID + "/1/stats/"
}

func vehicleStatsEndpoint(personaID string) string {
	return "/warsawvehiclesPopulateStats/" + personaID + "/1/stats/"
}

func detailedStatsEndpoint(personaID string) string {
	return "/warsawdetailedstatspopulate/" + personaID + "/1/stats/"
}

func assignmentStatsEndpoint(profileName string, id SoldierIdentity) string {
	return "/soldier/missionsPopulateStats/" + profileName + "/" + id.PersonaID + "/" + id.UserID + "/1/"
}

func awardStatsEndpoint(personaID string) string {
	return "/warsawawardspopulate/" + personaID + "/1/stats/"
}

func reportListEndpoint(personaID string) string {
	return fmt.Sprintf("/warsawbattlereportspopulate/%s/%d/1/", personaID, reportPageSize)
}

func reportListMoreEndpoint(personaID, createdAt string) string {
	return fmt.Sprintf("/warsawbattlereportspopulatemore/%s/%d/1/%s", personaID, reportPageSize, createdAt)
}

func reportEndpoint(reportID, personaID string) string {
	return "/battlereport/loadgeneralreport/" + reportID + "/1/" + personaID + "/"
}

// reportOverviewURL is the page the operator can open in a browser to
// check whether a soldier's battle reports are visible.
func reportOverviewURL(baseURL, profileName, personaID string) string {
	return baseURL + "/soldier/" + profileName + "/battlereports/" + personaID + "/pc/"
}
