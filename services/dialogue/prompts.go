package dialogue

// Agent-side copy for each step of the funnel. Spanish is the stock widget
// language; a tenant override only replaces the opening greeting.
const (
	promptOptions = "👋 ¡Hola! Un gusto saludarte.\n\nPara ayudarte mejor, cuéntame: ¿Prefieres ver nuestros servicios o buscar un profesional?"

	promptProviders = "Perfecto. Estos son nuestros especialistas disponibles:"
	promptServices  = "Aquí tienes nuestro catálogo de servicios:"

	promptProviderMatched  = "¡Entendido! Veo que buscas atenderte con %s.\n\nSelecciona el servicio que necesitas:"
	promptProviderServices = "Excelente, %s realiza los siguientes servicios. ¿Cuál prefieres?"
	promptServiceSlots     = "📅 Aquí tienes la disponibilidad más próxima para %s (Próximos 2 días):"

	promptAskName    = "¡Excelente elección! 📝 Para coordinar tu reserva, primero necesito tu **nombre** (sin apellidos)."
	promptAskSurname = "Gracias %s. ¿Me podrías indicar tus **apellidos**?"
	promptAskEmail   = "Perfecto. ¿A qué **correo electrónico** te enviamos la confirmación?"
	promptAskPhone   = "Anotado. Por último, ¿me indicas un número de **teléfono** de contacto?"

	promptConfirmDetails = "¡Gracias! Por favor confirma si estos datos son correctos:\n\n👤 **Nombre:** %s\n📧 **Email:** %s\n📱 **Teléfono:** %s\n\n¿Procedemos con la reserva?"
	promptConfirmed      = "¡Reserva confirmada con éxito! 🎉 \n\nTe hemos enviado un correo con todos los detalles de tu cita."
	promptRetry          = "Entendido. Comencemos de nuevo para corregir los datos.\n\n¿Cuál es tu **nombre**?"

	promptFallback = "Disculpa, no entendí. Por favor selecciona una de las opciones disponibles."
)

const (
	labelServices  = "Ver Servicios"
	labelProviders = "Ver Profesionales"
	labelConfirm   = "Sí, confirmar"
	labelRetry     = "Corregir"
)
