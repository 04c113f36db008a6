package battlelog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kennygrant/sanitize"
)

// archiveDirName is the fixed directory every archive is written
// under, one subdirectory per profile.
const archiveDirName = "bf4-battlelog-archive"

// Archive downloads the full resource set for the named profile and
// writes one file per resource under OutputDir. Summary resources are
// fetched sequentially; individual battle reports are fetched
// concurrently afterwards.
func (arc *Archiver) Archive(ctx context.Context, profileName string) error {
	// Make sure archiver has been validated
	if !arc.isValidated {
		return fmt.Errorf("archiver hasn't been validated")
	}

	if profileName == "" {
		return fmt.Errorf("profile name is not specified")
	}

	arc.logf("fetching profile data for %s\n", profileName)
	profileBody, err := arc.fetch(ctx, userEndpoint(profileName))
	if err != nil {
		return err
	}

	identity, err := parseIdentity(profileBody)
	if err != nil {
		return fmt.Errorf("profile %s: %w", profileName, err)
	}

	dir := filepath.Join(arc.OutputDir, archiveDirName, sanitize.BaseName(profileName))
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	if err := arc.writeFile(filepath.Join(dir, "profile_data.json"), profileBody); err != nil {
		return err
	}

	if identity.ClubID != "" {
		arc.log("fetching active club data")
		body, err := arc.fetch(ctx, platoonEndpoint(identity.ClubID))
		if err != nil {
			return err
		}
		if err := arc.writeFile(filepath.Join(dir, "club_data.json"), body); err != nil {
			return err
		}
	} else {
		arc.log("profile has no active club, skipping club data")
	}

	summaries := []struct {
		fileName string
		endpoint string
	}{
		{"weapon_stats.json", weaponStatsEndpoint(identity.PersonaID)},
		{"vehicle_stats.json", vehicleStatsEndpoint(identity.PersonaID)},
		{"detailed_stats.json", detailedStatsEndpoint(identity.PersonaID)},
		{"assignment_stats.json", assignmentStatsEndpoint(profileName, identity)},
		{"award_stats.json", awardStatsEndpoint(identity.PersonaID)},
	}

	for _, res := range summaries {
		arc.logf("fetching %s\n", res.fileName)
		body, err := arc.fetch(ctx, res.endpoint)
		if err != nil {
			return err
		}
		if err := arc.writeFile(filepath.Join(dir, res.fileName), body); err != nil {
			return err
		}
	}

	if arc.SkipReports {
		arc.log("skipping battle reports")
		return nil
	}

	arc.log("fetching battle report list, this may take a while")
	entries, err := arc.listReports(ctx, identity.PersonaID)
	if errors.Is(err, ErrReportsHidden) {
		return fmt.Errorf("%s: %w (see %s)", profileName, err,
			reportOverviewURL(arc.BaseURL, profileName, identity.PersonaID))
	} else if err != nil {
		return err
	}
	arc.logf("found %d battle reports\n", len(entries))

	listBody, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode report list: %w", err)
	}
	if err := arc.writeFile(filepath.Join(dir, "report_list.json"), listBody); err != nil {
		return err
	}

	reportsDir := filepath.Join(dir, "reports")
	if err := os.MkdirAll(reportsDir, 0700); err != nil {
		return err
	}

	return arc.downloadReports(ctx, identity.PersonaID, entries, reportsDir)
}
