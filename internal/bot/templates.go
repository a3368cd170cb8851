package bot

import "fmt"

// Template renders a named outbound message. Unknown names yield a
// placeholder instead of an error so operators see what went wrong.
func Template(name string, vars map[string]string) string {
	switch name {
	case "welcome":
		return "Olá! 👋 Bem-vindo à Pizzaria X!\n\nEstamos prontos para atender seu pedido."

	case "promotion":
		text := vars["promotionText"]
		if text == "" {
			text = "Promoção válida até hoje!"
		}
		return fmt.Sprintf("🎉 *PROMOÇÃO ESPECIAL* 🎉\n\n%s\n\nFaça já seu pedido!", text)

	case "orderConfirmed":
		estimated := vars["estimatedTime"]
		if estimated == "" {
			estimated = "40-50 minutos"
		}
		return fmt.Sprintf("✅ Pedido confirmado!\n\nSeu pedido foi recebido e já está sendo preparado.\n\nTempo estimado: %s", estimated)

	case "orderReady":
		return "🍕 Seu pedido está pronto!\n\nO entregador já saiu e está a caminho do seu endereço."

	case "thankYou":
		return "Obrigado pela preferência! 🙏\n\nFoi um prazer atendê-lo. Até a próxima!"
	}

	return "Template não encontrado"
}
