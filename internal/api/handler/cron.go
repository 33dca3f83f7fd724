package handler

import (
	"net/http"

	"github.com/Sai2035/Social-Media-Analytics/pkg/apiErrors"
	"github.com/Sai2035/Social-Media-Analytics/pkg/log"
	"github.com/julienschmidt/httprouter"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeSnapshotRefresh = "snapshot-refresh"
	CronJobTypeAll             = "all"
)

// CronJob é implementado pelos serviços agendados que aceitam execução manual
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	SnapshotRefreshSyncService CronJob
}

func (s CronJobServices) jobs() map[string]CronJob {
	jobs := make(map[string]CronJob)
	if s.SnapshotRefreshSyncService != nil {
		jobs[CronJobTypeSnapshotRefresh] = s.SnapshotRefreshSyncService
	}
	return jobs
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		jobs := services.jobs()

		switch cronType {
		case CronJobTypeAll:
			for _, job := range jobs {
				job.TriggerManualSync()
			}
		default:
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: snapshot-refresh, all", nil)
				return
			}
			job.TriggerManualSync()
		}

		logger.WithField("cron_type", cronType).Info("cron: manual run triggered")

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		if err := writeJSON(w, http.StatusAccepted, response); err != nil {
			logger.WithError(err).Error("cron: failed to encode response")
		}
	})
}

// GetCronStatus retorna o status de uma cron job, ou de todas com o tipo "all"
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		jobs := services.jobs()

		var status any
		if cronType == CronJobTypeAll {
			all := make(map[string]any, len(jobs))
			for name, job := range jobs {
				all[name] = job.GetStatus()
			}
			status = all
		} else {
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: snapshot-refresh, all", nil)
				return
			}
			status = job.GetStatus()
		}

		if err := writeJSON(w, http.StatusOK, status); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("cron: failed to encode response")
		}
	})
}
