package apifyclient

import (
	"context"
	"net/http"
	"net/url"

	apifydomain "github.com/Sai2035/Social-Media-Analytics/infrastructure/integrator/apify/domain"
	"github.com/Sai2035/Social-Media-Analytics/internal/domain"
	"github.com/Sai2035/Social-Media-Analytics/pkg/log"
	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
)

var errRunPending = errors.New("apify: run still in progress")

func (c *ApifyClient) startRun(ctx context.Context, input apifydomain.ProfileScraperInput) (*apifydomain.Run, error) {
	var envelope apifydomain.RunEnvelope

	path := "/acts/" + url.PathEscape(c.cfg.ProfileActor) + "/runs"
	if err := c.doJSON(ctx, http.MethodPost, path, input, &envelope); err != nil {
		return nil, err
	}

	if envelope.Data.ID == "" {
		return nil, errors.Wrap(domain.ErrMalformedPayload, "apify: run without id")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"run_id":       envelope.Data.ID,
		"results_type": input.ResultsType,
	}).Debug("apify: actor run started")

	return &envelope.Data, nil
}

// waitForRun consulta o status até o run terminar. Só o estado "em andamento" é repetido;
// erros HTTP encerram a espera imediatamente.
func (c *ApifyClient) waitForRun(ctx context.Context, runID string) (*apifydomain.Run, error) {
	path := "/actor-runs/" + url.PathEscape(runID)

	run, err := retry.DoWithData(
		func() (*apifydomain.Run, error) {
			var envelope apifydomain.RunEnvelope
			if err := c.doJSON(ctx, http.MethodGet, path, nil, &envelope); err != nil {
				return nil, retry.Unrecoverable(err)
			}

			if !envelope.Data.IsTerminal() {
				return nil, errRunPending
			}

			return &envelope.Data, nil
		},
		retry.Context(ctx),
		retry.Attempts(c.cfg.MaxPollAttempts),
		retry.Delay(c.cfg.PollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, errRunPending)
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrapf(domain.ErrUpstreamUnavailable, "apify: run %s: %v", runID, ctx.Err())
		}
		if errors.Is(err, errRunPending) {
			return nil, errors.Wrapf(domain.ErrUpstreamUnavailable, "apify: run %s did not finish after %d polls", runID, c.cfg.MaxPollAttempts)
		}
		return nil, err
	}

	if run.Status != apifydomain.RunStatusSucceeded {
		return nil, errors.Wrapf(domain.ErrUpstreamUnavailable, "apify: run %s finished with status %s: %s", runID, run.Status, run.StatusMessage)
	}

	return run, nil
}

func (c *ApifyClient) datasetItems(ctx context.Context, datasetID string) ([]map[string]any, error) {
	if datasetID == "" {
		return nil, errors.Wrap(domain.ErrMalformedPayload, "apify: run without dataset")
	}

	var items []map[string]any
	path := "/datasets/" + url.PathEscape(datasetID) + "/items?clean=true&format=json"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}

	return items, nil
}
