package bot

// Replies sent to customers. All conversational text is Portuguese;
// formatting markers (*bold*, `code`) follow WhatsApp conventions.
const (
	MSG_WELCOME = "Oi! Eu sou o assistente da Pizzaria 🍕\n\n" +
		"Digite:\n" +
		"1 - Ver cardápio\n" +
		"2 - Fazer um pedido\n" +
		"3 - Falar com atendente humano"

	MSG_CANCELLED = "Pedido cancelado e conversa reiniciada. Se quiser fazer um novo pedido, mande qualquer mensagem."

	MSG_INVALID_OPTION = "Opção inválida. Digite 1 (cardápio), 2 (pedido) ou 3 (atendente)."

	MSG_CALL_HUMAN = "Ok, vou chamar um atendente humano. Aguarde um momento, por favor."

	MSG_ASK_NAME            = "Perfeito! Qual o seu nome?"
	MSG_ASK_NAME_AFTER_MENU = "Vamos lá! Qual o seu nome?"

	MSG_ORDER_HINT = "Se quiser fazer um pedido, responda com \"2\"."

	MSG_ITEM_FORMAT = "Envie cada item no formato:\n" +
		"`sabor(es), tamanho, quantidade`\n\n" +
		"*Tamanhos:* média, grande, família\n" +
		"*Sabores:* Média/Grande até 2 sabores | Família até 3 sabores\n" +
		"Separe sabores com `/`\n\n" +
		"Exemplos:\n" +
		"`calabresa, média, 1`\n" +
		"`calabresa/frango, grande, 2`\n" +
		"`mussarela/portuguesa/bacon, família, 1`\n\n" +
		"Quando terminar, digite: finalizar"

	MSG_NOT_AN_ITEM = "Não entendi este item. Use o formato:\n" +
		"`sabor(es), tamanho, quantidade`\n\n" +
		"Exemplos:\n" +
		"`calabresa, média, 1`\n" +
		"`calabresa/frango, grande, 2`\n\n" +
		"Ou digite \"finalizar\" para encerrar a seleção."

	MSG_NO_ITEMS = "Você ainda não adicionou nenhum item. Envie pelo menos um item antes de finalizar."

	MSG_ASK_ADDRESS = "Certo! Agora me envie o endereço completo (rua, número, bairro e ponto de referência, se tiver)."

	MSG_ASK_PAYMENT     = "Qual a forma de pagamento? (pix, cartão, dinheiro)"
	MSG_INVALID_PAYMENT = "Forma de pagamento inválida. Use: pix, cartão ou dinheiro."

	MSG_ASK_OBSERVATION = "Tem alguma observação para o pedido? (Ex: sem cebola, bem passada, etc.)\n\n" +
		"Se não tiver, digite: não"

	MSG_CONFIRM_PROMPT = "Por favor, responda \"sim\" para confirmar o pedido ou \"nao\" para recomeçar."

	MSG_ORDER_SUCCESS = "Pedido confirmado e registrado no sistema! 🎉\n" +
		"Em breve vamos te avisar quando estiver pronto. Obrigado!"

	MSG_ORDER_MANUAL = "Seu pedido foi recebido, mas tivemos um problema ao registrar no sistema interno.\n" +
		"Um atendente irá conferir manualmente. Desculpe o transtorno."

	MSG_START_OVER = "Sem problemas! Vamos recomeçar. Mande qualquer mensagem para iniciar um novo pedido."

	MSG_FLOW_ERROR = "Tive um problema com o fluxo. Vamos recomeçar. Mande qualquer mensagem para iniciar o pedido."

	MSG_MENU_UNAVAILABLE = "Desculpe, não consegui carregar o cardápio agora. Tente novamente em alguns minutos."
)
