package locale

var bundles = map[string]map[string]string{
	"en-US": {
		"commands.ping.response": "pong",

		"commands.help.header": "Available commands:",

		"commands.error.generic": "something went wrong, try again later",

		"commands.language.missing":     "please choose a locale",
		"commands.language.unsupported": "locale %{locale} is not available",
		"commands.language.applied":     "language set to %{locale}",

		"commands.poll.unknown": "poll subcommand %{name} not found",

		"commands.poll.create.missing_name": "please give the poll a name",
		"commands.poll.create.bad_kind":     "poll kind must be single_choice or multiple_choice",
		"commands.poll.create.response":     "poll setup started in <#%{thread_id}>",

		"commands.poll.option.missing_label": "please give the option a label",
		"commands.poll.option.response":      "option %{label} added",

		"commands.poll.start.bad_timer": "timer must be a non-negative number of minutes",
		"commands.poll.start.response":  "the poll is open, place your votes",

		"commands.poll.stop.response": "the poll is closed, thanks for voting",

		"commands.poll.vote.missing_choice": "please name the option you want to vote for",
		"commands.poll.vote.response":       "vote recorded",

		"commands.poll.help": "```\n/poll create name [description] [kind]  create a poll and its setup thread\n" +
			"/poll option label [description]        add a voting option (in the thread)\n" +
			"/poll start [timer]                     open the poll for voting\n" +
			"/poll stop                              close the poll\n" +
			"/poll vote choice                       vote for an option\n```",

		"commands.poll.error.wrong_stage":          "the poll is not in the right stage for that",
		"commands.poll.error.duplicate_choice":     "an option with that value already exists",
		"commands.poll.error.unknown_choice":       "that option does not exist",
		"commands.poll.error.not_enough_choices":   "add at least two options before starting",
		"commands.poll.error.label_too_long":       "option labels are limited to 25 characters",
		"commands.poll.error.description_too_long": "option descriptions are limited to 365 characters",
		"commands.poll.error.not_found":            "there is no poll attached to this channel",
		"commands.poll.error.save_failed":          "could not save the poll, try again later",

		"commands.poll.modal.title":                   "Add option",
		"commands.poll.modal.label":                   "Option label",
		"commands.poll.modal.label_placeholder":       "Enter the option label",
		"commands.poll.modal.description":             "Option description",
		"commands.poll.modal.description_placeholder": "Enter the option description",

		"poll.embed.footer.setup":  "Setting up, add options below",
		"poll.embed.footer.voting": "Voting is open",
		"poll.embed.footer.closed": "Voting closed, %{total} votes cast",

		"poll.button.add_option": "Add option",
		"poll.button.start":      "Start poll",
		"poll.button.cancel":     "Cancel",
		"poll.button.stop":       "Stop poll",

		"listeners.love.reply":         "love you too, %{user}",
		"listeners.love.reply_counter": "love you too, %{user}, that makes %{counter} times",

		"listeners.voice.join": "%{user} joined <#%{channel_id}>",
	},
	"pt-BR": {
		"commands.ping.response": "pong",

		"commands.help.header": "Comandos disponíveis:",

		"commands.error.generic": "algo deu errado, tente novamente",

		"commands.language.missing":     "escolha um idioma",
		"commands.language.unsupported": "o idioma %{locale} não está disponível",
		"commands.language.applied":     "idioma definido para %{locale}",

		"commands.poll.unknown": "subcomando %{name} não encontrado",

		"commands.poll.create.missing_name": "dê um nome para a votação",
		"commands.poll.create.bad_kind":     "o tipo deve ser single_choice ou multiple_choice",
		"commands.poll.create.response":     "configuração da votação iniciada em <#%{thread_id}>",

		"commands.poll.option.missing_label": "dê um nome para a opção",
		"commands.poll.option.response":      "opção %{label} adicionada",

		"commands.poll.start.bad_timer": "o tempo deve ser um número de minutos não negativo",
		"commands.poll.start.response":  "a votação está aberta, registrem seus votos",

		"commands.poll.stop.response": "a votação foi encerrada, obrigado por participar",

		"commands.poll.vote.missing_choice": "informe a opção em que deseja votar",
		"commands.poll.vote.response":       "voto registrado",

		"commands.poll.help": "```\n/poll create name [description] [kind]  cria uma votação e seu tópico\n" +
			"/poll option label [description]        adiciona uma opção (no tópico)\n" +
			"/poll start [timer]                     abre a votação\n" +
			"/poll stop                              encerra a votação\n" +
			"/poll vote choice                       vota em uma opção\n```",

		"commands.poll.error.wrong_stage":          "a votação não está na etapa certa para isso",
		"commands.poll.error.duplicate_choice":     "já existe uma opção com esse valor",
		"commands.poll.error.unknown_choice":       "essa opção não existe",
		"commands.poll.error.not_enough_choices":   "adicione pelo menos duas opções antes de começar",
		"commands.poll.error.label_too_long":       "o nome da opção é limitado a 25 caracteres",
		"commands.poll.error.description_too_long": "a descrição da opção é limitada a 365 caracteres",
		"commands.poll.error.not_found":            "não há votação vinculada a este canal",
		"commands.poll.error.save_failed":          "não foi possível salvar a votação, tente novamente",

		"commands.poll.modal.title":                   "Adicionar opção",
		"commands.poll.modal.label":                   "Nome da opção",
		"commands.poll.modal.label_placeholder":       "Digite o nome da opção",
		"commands.poll.modal.description":             "Descrição da opção",
		"commands.poll.modal.description_placeholder": "Digite a descrição da opção",

		"poll.embed.footer.setup":  "Em configuração, adicione opções abaixo",
		"poll.embed.footer.voting": "Votação aberta",
		"poll.embed.footer.closed": "Votação encerrada, %{total} votos",

		"poll.button.add_option": "Adicionar opção",
		"poll.button.start":      "Iniciar votação",
		"poll.button.cancel":     "Cancelar",
		"poll.button.stop":       "Encerrar votação",

		"listeners.love.reply":         "também te amo, %{user}",
		"listeners.love.reply_counter": "também te amo, %{user}, já são %{counter} vezes",

		"listeners.voice.join": "%{user} entrou em <#%{channel_id}>",
	},
}
