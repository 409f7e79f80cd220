package i18n

// Message catalogs keyed by language tag. Placeholders follow
// universal-translator syntax: {0}, {1}.
var catalogs = map[string]map[string]string{
	"en": {
		"state_active":               "Active",
		"state_approved":             "Approved",
		"state_blocked":              "Blocked",
		"state_completed":            "Completed",
		"state_delivered":            "Delivered",
		"state_failed":               "Failed",
		"state_pending":              "Pending",
		"state_retarded":             "Retarded",
		"state_undelivered":          "Undelivered",
		"fullstate_active":           "Active",
		"fullstate_approved":         "Activity approved",
		"fullstate_blocked":          "Blocked",
		"fullstate_completed":        "Activity completed",
		"fullstate_delivered":        "Pending feedback from the teacher",
		"fullstate_failed":           "Activity failed",
		"fullstate_pending":          "Pending",
		"fullstate_pendingdays":      "{0} days left",
		"fullstate_retarded":         "Late {0} days",
		"fullstate_retardedactive":   "Late but available until {0}",
		"fullstate_undelivered":      "Activity undelivered",
		"infodate_available_between": "Available from {0} to {1}",
		"infodate_available_from":    "Available from {0}",
		"infodate_available_on":      "Available on {0}",
		"infodate_available_until":   "Available until {0}",
		"infodate_delivered_between": "Delivered from {0} to {1}",
		"infodate_delivered_from":    "Delivered from {0}",
		"infodate_delivered_on":      "Delivered on {0}",
		"infodate_delivered_until":   "Delivered until {0}",
		"infodate_expired_between":   "Expired from {0} to {1}",
		"infodate_expired_from":      "Expired from {0}",
		"infodate_expired_on":        "Expired on {0}",
		"infodate_expired_until":     "Expired until {0}",
		"timehoursrange":             "from {0} to {1}",
		"extensiondate":              "The activity was extended until {0}",
		"automaticgrade":             "Automatic grade",
		"noenddate":                  "No end date",
		"notdefined":                 "Not defined",
		"forum_rating":               "Rating",
		"forum_wholeforum":           "Whole forum",
		"workshopname_assessment":    "Assessment",
		"workshopname_submission":    "Submission",
		"duration_days":              "{0} days",
		"duration_weeks":             "{0} weeks",
		"studytime":                  "{0} hours of dedication ({1} academic credits)",
	},
	"es": {
		"state_active":               "Activa",
		"state_approved":             "Aprobada",
		"state_blocked":              "Bloqueada",
		"state_completed":            "Completada",
		"state_delivered":            "Entregada",
		"state_failed":               "Reprobada",
		"state_pending":              "Pendiente",
		"state_retarded":             "Retrasada",
		"state_undelivered":          "No entregada",
		"fullstate_active":           "Activo",
		"fullstate_approved":         "Actividad aprobada",
		"fullstate_blocked":          "Bloqueado",
		"fullstate_completed":        "Actividad completada",
		"fullstate_delivered":        "Pendiente de respuesta del profesor",
		"fullstate_failed":           "Actividad reprobada",
		"fullstate_pending":          "Pendiente",
		"fullstate_pendingdays":      "Faltan {0} días",
		"fullstate_retarded":         "Con retraso {0} días",
		"fullstate_retardedactive":   "Con retraso pero disponible hasta {0}",
		"fullstate_undelivered":      "Actividad no entregada",
		"infodate_available_between": "Disponible desde {0} hasta {1}",
		"infodate_available_from":    "Disponible desde {0}",
		"infodate_available_on":      "Disponible el {0}",
		"infodate_available_until":   "Disponible hasta el {0}",
		"infodate_delivered_between": "Entregada del {0} hasta el {1}",
		"infodate_delivered_from":    "Entregada el {0}",
		"infodate_delivered_on":      "Entregada en {0}",
		"infodate_delivered_until":   "Entregada desde {0}",
		"infodate_expired_between":   "Vencido desde {0} hasta {1}",
		"infodate_expired_from":      "Venció el {0}",
		"infodate_expired_on":        "Vencido en {0}",
		"infodate_expired_until":     "Vencido desde {0}",
		"timehoursrange":             "desde {0} hasta {1}",
		"extensiondate":              "La actividad se extendió hasta {0}",
		"automaticgrade":             "Calificación automática",
		"noenddate":                  "Sin fecha de finalización",
		"notdefined":                 "No definido",
		"forum_rating":               "Valoración",
		"forum_wholeforum":           "Foro completo",
		"workshopname_assessment":    "Evaluación",
		"workshopname_submission":    "Envío",
		"duration_days":              "{0} días",
		"duration_weeks":             "{0} semanas",
		"studytime":                  "{0} horas de dedicación ({1} créditos académicos)",
	},
}
