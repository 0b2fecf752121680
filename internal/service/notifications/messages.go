package notifications

import (
	"fmt"
	"html"

	"github.com/m04kA/studio-booking/internal/domain"
)

const noPhone = "No indicado"

func adminEmailSubject() string {
	return "Nueva reserva"
}

func adminEmailHTML(d domain.AppointmentDetails) string {
	return fmt.Sprintf(
		"<p>¡Nueva cita reservada!</p>"+
			"<p><b>Cliente:</b> %s</p>"+
			"<p><b>Teléfono:</b> %s</p>"+
			"<p><b>Servicio:</b> %s (%d min)</p>"+
			"<p><b>Fecha:</b> %s a las %s</p>",
		html.EscapeString(d.ClientName),
		html.EscapeString(phoneOrDefault(d.ClientPhone)),
		html.EscapeString(d.ServiceName),
		d.DurationMinutes,
		d.Date.Format(domain.DateFormat),
		d.StartTime,
	)
}

func clientEmailSubject(studio string) string {
	return fmt.Sprintf("%s: recibimos tu reserva", studio)
}

func clientEmailHTML(d domain.AppointmentDetails) string {
	return fmt.Sprintf(
		"<p>Hola %s,</p>"+
			"<p>Recibimos tu reserva para <b>%s</b>.</p>"+
			"<p>Fecha: %s<br>Hora: %s</p>"+
			"<p>¡Te esperamos!</p>",
		html.EscapeString(d.ClientName),
		html.EscapeString(d.ServiceName),
		d.Date.Format(domain.DateFormat),
		d.StartTime,
	)
}

func whatsAppText(d domain.AppointmentDetails) string {
	return fmt.Sprintf(
		"🌸 NUEVO TURNO!\n👤 %s\n📱 %s\n💆 %s\n📅 %s a las %shs",
		d.ClientName,
		phoneOrDefault(d.ClientPhone),
		d.ServiceName,
		d.Date.Format(domain.DateFormat),
		d.StartTime,
	)
}

func phoneOrDefault(phone *string) string {
	if phone == nil || *phone == "" {
		return noPhone
	}
	return *phone
}
