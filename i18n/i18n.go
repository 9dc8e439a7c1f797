package i18n

import (
	"log"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
)

// EnvLang forces the UI language.
const EnvLang = "MEMORYMORSE_LANG"

var lang string

var supported = []string{"pt", "es", "ru"}

var translations = map[string]map[string]string{
	"Decode Memory": {
		"pt": "Decifrar Memória",
		"es": "Descifrar Recuerdo",
		"ru": "Расшифровать",
	},
	"Create Memory": {
		"pt": "Criar Memória",
		"es": "Crear Recuerdo",
		"ru": "Создать воспоминание",
	},
	"Memory Journal": {
		"pt": "Diário de Memórias",
		"es": "Diario de Recuerdos",
		"ru": "Дневник воспоминаний",
	},
	"Decode Console": {
		"pt": "Console de Decifração",
		"es": "Consola de Descifrado",
		"ru": "Консоль расшифровки",
	},
	"Share Your Memory": {
		"pt": "Compartilhe sua Memória",
		"es": "Comparte tu Recuerdo",
		"ru": "Поделитесь воспоминанием",
	},
	"Submit Translation": {
		"pt": "Enviar Tradução",
		"es": "Enviar Traducción",
		"ru": "Отправить перевод",
	},
	"Submit Memory": {
		"pt": "Enviar Memória",
		"es": "Enviar Recuerdo",
		"ru": "Отправить",
	},
	"Clear": {
		"pt": "Limpar",
		"es": "Borrar",
		"ru": "Очистить",
	},
	"Close": {
		"pt": "Fechar",
		"es": "Cerrar",
		"ru": "Закрыть",
	},
	"Please enter your decoded message": {
		"pt": "Digite sua mensagem decifrada",
		"es": "Escribe tu mensaje descifrado",
		"ru": "Введите расшифрованное сообщение",
	},
	"Correct translation! Memory added to your journal.": {
		"pt": "Tradução correta! Memória adicionada ao seu diário.",
		"es": "¡Traducción correcta! Recuerdo añadido a tu diario.",
		"ru": "Верно! Воспоминание добавлено в дневник.",
	},
	"Translation incorrect. Try again.": {
		"pt": "Tradução incorreta. Tente novamente.",
		"es": "Traducción incorrecta. Inténtalo de nuevo.",
		"ru": "Неверно. Попробуйте снова.",
	},
	"Memory successfully added to the lighthouse!": {
		"pt": "Memória adicionada ao farol!",
		"es": "¡Recuerdo añadido al faro!",
		"ru": "Воспоминание передано маяку!",
	},
	"Morse Audio": {
		"pt": "Áudio Morse",
		"es": "Audio Morse",
		"ru": "Звук Морзе",
	},
	"Volume": {
		"pt": "Volume",
		"es": "Volumen",
		"ru": "Громкость",
	},
	"Flashing": {
		"pt": "Piscando",
		"es": "Destellando",
		"ru": "Мигание",
	},
	"Search memories...": {
		"pt": "Buscar memórias...",
		"es": "Buscar recuerdos...",
		"ru": "Поиск...",
	},
	"No memories found": {
		"pt": "Nenhuma memória encontrada",
		"es": "No se encontraron recuerdos",
		"ru": "Ничего не найдено",
	},
	"Export Journal": {
		"pt": "Exportar Diário",
		"es": "Exportar Diario",
		"ru": "Экспорт дневника",
	},
	"Listen to the lighthouse. Each flash carries a memory waiting to be discovered...": {
		"pt": "Ouça o farol. Cada lampejo carrega uma memória esperando para ser descoberta...",
		"es": "Escucha el faro. Cada destello lleva un recuerdo esperando ser descubierto...",
		"ru": "Слушайте маяк. Каждая вспышка хранит воспоминание...",
	},
	"Type your translation here...": {
		"pt": "Digite sua tradução aqui...",
		"es": "Escribe tu traducción aquí...",
		"ru": "Введите перевод...",
	},
	"Share a memory, a thought, or a moment...": {
		"pt": "Compartilhe uma memória, um pensamento ou um momento...",
		"es": "Comparte un recuerdo, un pensamiento o un momento...",
		"ru": "Поделитесь воспоминанием, мыслью или мгновением...",
	},
	"%d characters remaining": {
		"pt": "%d caracteres restantes",
		"es": "%d caracteres restantes",
		"ru": "Осталось символов: %d",
	},
	"Memory is too long": {
		"pt": "Memória longa demais",
		"es": "Recuerdo demasiado largo",
		"ru": "Слишком длинное воспоминание",
	},
	"Please enter a memory": {
		"pt": "Escreva uma memória",
		"es": "Escribe un recuerdo",
		"ru": "Введите воспоминание",
	},
	"Sentiment": {
		"pt": "Sentimento",
		"es": "Sentimiento",
		"ru": "Настроение",
	},
	"Help": {
		"pt": "Ajuda",
		"es": "Ayuda",
		"ru": "Справка",
	},
	"About Memory Morse": {
		"pt": "Sobre o Memory Morse",
		"es": "Acerca de Memory Morse",
		"ru": "О Memory Morse",
	},
}

func init() {
	// Check for override environment variable
	if forcedLang := strings.TrimSpace(os.Getenv(EnvLang)); forcedLang != "" {
		log.Printf("%s is set to: '%s'", EnvLang, forcedLang)
		lang = forcedLang
		return
	}

	log.Printf("%s is not set, detecting from system locale.", EnvLang)
	userLocales, err := locale.GetLocales()
	if err != nil {
		log.Println("Could not get user locale, defaulting to english")
		lang = "en"
		return
	}

	if len(userLocales) > 0 {
		log.Printf("Detected user locale: %s", userLocales[0])
		lang = match(userLocales[0])
	} else {
		log.Println("No user locale detected, defaulting to english")
		lang = "en"
	}
	log.Printf("Language set to: %s", lang)
}

// match maps a locale such as "pt-BR" to a supported language code.
func match(userLocale string) string {
	for _, l := range supported {
		if strings.HasPrefix(userLocale, l) {
			return l
		}
	}
	return "en"
}

// T translates key, falling back to the key itself.
func T(key string) string {
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

// GetLang returns the active language code.
func GetLang() string {
	return lang
}

// SetLang overrides the detected language, e.g. from the --lang flag.
func SetLang(code string) {
	code = strings.TrimSpace(code)
	if code == "" {
		return
	}
	lang = match(code)
	log.Printf("Language set to: %s", lang)
}
