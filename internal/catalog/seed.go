package catalog

import "bistro-attendant/internal/models"

// Default dataset for Bistrô da Casa. The seeder publishes these as the
// first version of each kind; later versions are edited in place in the
// database and picked up on the next warm.

func DefaultWeeklyHours() []models.DayHours {
	return []models.DayHours{
		{Weekday: "domingo", Ranges: []models.TimeRange{{OpensAt: "10:00", ClosesAt: "18:00"}}},
		{Weekday: "segunda", Ranges: []models.TimeRange{{OpensAt: "12:00", ClosesAt: "16:00"}}},
		{Weekday: "terça", Ranges: []models.TimeRange{{OpensAt: "12:00", ClosesAt: "16:00"}}},
		{Weekday: "quarta", Ranges: []models.TimeRange{
			{OpensAt: "12:00", ClosesAt: "16:00"},
			{OpensAt: "18:00", ClosesAt: "23:00"},
		}},
		{Weekday: "quinta", Ranges: []models.TimeRange{{OpensAt: "12:00", ClosesAt: "23:00"}}},
		{Weekday: "sexta", Ranges: []models.TimeRange{{OpensAt: "12:00", ClosesAt: "23:00"}}},
		{Weekday: "sábado", Ranges: []models.TimeRange{{OpensAt: "10:00", ClosesAt: "23:00"}}},
	}
}

func DefaultPrograms() []models.Program {
	weekdayLunch := []models.DayHours{
		{Weekday: "segunda", Ranges: []models.TimeRange{{OpensAt: "12:00", ClosesAt: "16:00"}}},
		{Weekday: "terça", Ranges: []models.TimeRange{{OpensAt: "12:00", ClosesAt: "16:00"}}},
		{Weekday: "quarta", Ranges: []models.TimeRange{{OpensAt: "12:00", ClosesAt: "16:00"}}},
		{Weekday: "quinta", Ranges: []models.TimeRange{{OpensAt: "12:00", ClosesAt: "16:00"}}},
		{Weekday: "sexta", Ranges: []models.TimeRange{{OpensAt: "12:00", ClosesAt: "16:00"}}},
	}

	return []models.Program{
		{
			Names:       []string{"menu executivo", "executivo", "almoço executivo"},
			Schedule:    weekdayLunch,
			Description: "Menu executivo com entrada, prato principal e sobremesa a preço fixo.",
		},
		{
			Names: []string{"café da manhã", "cafe", "brunch"},
			Schedule: []models.DayHours{
				{Weekday: "sábado", Ranges: []models.TimeRange{{OpensAt: "10:00", ClosesAt: "13:00"}}},
				{Weekday: "domingo", Ranges: []models.TimeRange{{OpensAt: "10:00", ClosesAt: "13:00"}}},
			},
			Description: "Café da manhã servido à mesa, com opções doces e salgadas.",
		},
		{
			Names: []string{"jantar", "menu de jantar"},
			Schedule: []models.DayHours{
				{Weekday: "quarta", Ranges: []models.TimeRange{{OpensAt: "18:00", ClosesAt: "23:00"}}},
				{Weekday: "quinta", Ranges: []models.TimeRange{{OpensAt: "18:00", ClosesAt: "23:00"}}},
				{Weekday: "sexta", Ranges: []models.TimeRange{{OpensAt: "18:00", ClosesAt: "23:00"}}},
				{Weekday: "sábado", Ranges: []models.TimeRange{{OpensAt: "18:00", ClosesAt: "23:00"}}},
			},
			Description: "Menu de jantar completo, com pratos da estação.",
		},
		{
			Names: []string{"menu completo", "cardápio completo"},
			Schedule: []models.DayHours{
				{Weekday: "segunda", Ranges: []models.TimeRange{{OpensAt: "12:00"}}},
				{Weekday: "terça", Ranges: []models.TimeRange{{OpensAt: "12:00"}}},
				{Weekday: "quarta", Ranges: []models.TimeRange{{OpensAt: "12:00"}}},
				{Weekday: "quinta", Ranges: []models.TimeRange{{OpensAt: "12:00"}}},
				{Weekday: "sexta", Ranges: []models.TimeRange{{OpensAt: "12:00"}}},
				{Weekday: "sábado", Ranges: []models.TimeRange{{OpensAt: "13:00"}}},
				{Weekday: "domingo", Ranges: []models.TimeRange{{OpensAt: "13:00"}}},
			},
			Description: "Cardápio completo disponível a partir destes horários.",
		},
		{
			Names: []string{"fondue", "noite do fondue"},
			Schedule: []models.DayHours{
				{Weekday: "quarta", Ranges: []models.TimeRange{{OpensAt: "19:00"}}},
				{Weekday: "quinta", Ranges: []models.TimeRange{{OpensAt: "19:00"}}},
				{Weekday: "sexta", Ranges: []models.TimeRange{{OpensAt: "19:00"}}},
				{Weekday: "sábado", Ranges: []models.TimeRange{{OpensAt: "19:00"}}},
			},
			Description: "Sequência de fondue de queijo e chocolate.",
			Limited:     true,
		},
		{
			Names: []string{"música ao vivo", "som ao vivo"},
			Schedule: []models.DayHours{
				{Weekday: "sexta", Ranges: []models.TimeRange{{OpensAt: "19:00"}}},
			},
			Description: "Música ao vivo na varanda.",
		},
	}
}

func DefaultInfoFacts() []models.InfoFact {
	return []models.InfoFact{
		{
			Names: []string{"cardápio", "menu", "valores", "preços"},
			Notes: []string{"Nosso cardápio completo com valores está em https://linktr.ee/bitrodacasa."},
		},
		{
			Names: []string{"endereço", "localização", "onde fica"},
			Notes: []string{"Estamos na Rua Harmonia, 277, Vila Madalena, São Paulo."},
		},
		{
			Names: []string{"eventos particulares", "eventos", "festa"},
			Notes: []string{"Fazemos eventos particulares para grupos. Fale com a equipe pelo WhatsApp para um orçamento."},
		},
		{
			Names: []string{"reserva", "reservas", "reservar mesa"},
			Notes: []string{"As reservas são feitas pelo link https://linktr.ee/bitrodacasa."},
		},
		{
			Names: []string{"estacionamento", "valet"},
			Notes: []string{"Temos valet na porta e estacionamento conveniado na rua ao lado."},
		},
		{
			Names: []string{"como chegar", "transporte", "metrô"},
			Notes: []string{"A estação de metrô mais próxima é a Vila Madalena, a 10 minutos a pé."},
		},
		{
			Names: []string{"formas de pagamento", "pagamento", "pix", "cartão"},
			Notes: []string{"Aceitamos cartões de crédito e débito, Pix e dinheiro."},
		},
		{
			Names: []string{"aniversário", "aniversariante"},
			Notes: []string{"Aniversariantes ganham uma sobremesa especial. Avise na reserva!"},
		},
		{
			Names: []string{"pet", "cachorro", "animais"},
			Notes: []string{"Aceitamos pets na área da varanda."},
		},
		{
			Names: []string{"feedback", "reclamação", "sugestão"},
			Notes: []string{"Sua opinião é muito bem-vinda. Pode deixar seu feedback aqui mesmo que encaminhamos para a equipe."},
		},
		{
			Names: []string{"reserva esgotada", "lotado", "lista de espera"},
			Notes: []string{"Quando as reservas esgotam, atendemos por ordem de chegada conforme as mesas liberam."},
		},
		{
			Names: []string{"rolha", "taxa de rolha", "levar vinho"},
			Notes: []string{"Cobramos taxa de rolha para vinhos trazidos de fora."},
		},
		{
			Names: []string{"vegetariano", "vegano", "opções vegetarianas"},
			Notes: []string{"Temos opções vegetarianas e veganas no cardápio. É só pedir ao garçom."},
		},
	}
}
