package ingest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sentinelvuln/sentinel-backend/database"
	"github.com/sentinelvuln/sentinel-backend/internal/feeds/epss"
	"github.com/sentinelvuln/sentinel-backend/internal/feeds/kev"
	"github.com/sentinelvuln/sentinel-backend/internal/feeds/nvd"
	"github.com/sentinelvuln/sentinel-backend/model"
)

// Pipeline runs one full ingestion: KEV, then the catalog window, then EPSS
// for exactly the identifiers seen, then correlate and upsert. Feed fetches
// are strictly sequential; later stages need the identifiers from earlier
// ones and the imposed rate limits rule out fan-out.
type Pipeline struct {
	store      database.VulnStore
	nvdClient  *nvd.Client
	kevClient  *kev.Client
	epssClient *epss.Client
	log        *zap.SugaredLogger
}

// NewPipeline wires the pipeline. The store and clients are injected so
// tests can point the clients at local servers and the store at a fake.
func NewPipeline(store database.VulnStore, nvdClient *nvd.Client, kevClient *kev.Client, epssClient *epss.Client, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{
		store:      store,
		nvdClient:  nvdClient,
		kevClient:  kevClient,
		epssClient: epssClient,
		log:        log,
	}
}

// Run executes a single ingestion run and reports the number of records
// written. Feed failures degrade to empty or partial lookups inside the
// clients; only store failures surface as errors. There are no retries
// inside a run - the external trigger re-invokes the whole pipeline.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	p.log.Info("Starting vulnerability ingestion")

	kevResult := p.kevClient.Fetch(ctx)
	p.log.Infof("KEV catalogue loaded: %d entries", len(kevResult.Entries))

	nvdResult := p.nvdClient.FetchWindow(ctx)
	p.log.Infof("NVD CVEs fetched: %d", len(nvdResult.Vulnerabilities))

	if len(nvdResult.Vulnerabilities) == 0 {
		p.log.Info("No CVEs to process")
		return 0, nil
	}

	cveIDs := make([]string, 0, len(nvdResult.Vulnerabilities))
	for _, vuln := range nvdResult.Vulnerabilities {
		if vuln.CVE.ID != "" {
			cveIDs = append(cveIDs, vuln.CVE.ID)
		}
	}

	epssResult := p.epssClient.FetchScores(ctx, cveIDs)
	p.log.Infof("EPSS scores fetched: %d entries", len(epssResult.Entries))

	now := time.Now()
	records := make([]model.VulnerabilityRecord, 0, len(nvdResult.Vulnerabilities))
	for _, vuln := range nvdResult.Vulnerabilities {
		if rec := BuildRecord(vuln, kevResult.Entries, epssResult.Entries, now); rec != nil {
			records = append(records, *rec)
		}
	}

	written, err := p.store.BulkUpsert(ctx, records)
	if err != nil {
		return written, err
	}

	p.log.Infof("Ingestion complete: %d CVEs written", written)
	return written, nil
}
