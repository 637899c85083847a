package ui

import (
	"os"
	"strings"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle              = "app_title"
	KeyFile                  = "file"
	KeySettings              = "settings"
	KeyLanguage              = "language"
	KeyHelp                  = "help"
	KeyAbout                 = "about"
	KeyAboutText             = "about_text"
	KeyFiles                 = "files"
	KeyInputVideo            = "input_video"
	KeyOutputFile            = "output_file"
	KeyInputPlaceholder      = "input_placeholder"
	KeyOutputPlaceholder     = "output_placeholder"
	KeyBrowse                = "browse"
	KeyOptions               = "options"
	KeyFormat                = "format"
	KeyWidth                 = "width"
	KeyFPS                   = "fps"
	KeySpeed                 = "speed"
	KeyQuality               = "quality"
	KeyLoop                  = "loop"
	KeyInterpolate           = "interpolate"
	KeyConvert               = "convert"
	KeyCancel                = "cancel"
	KeyLog                   = "log"
	KeyPreview               = "preview"
	KeyReveal                = "reveal"
	KeyOpen                  = "open"
	KeySave                  = "save"
	KeyMissingInputTitle     = "missing_input_title"
	KeyMissingInput          = "missing_input"
	KeyInvalidInputTitle     = "invalid_input_title"
	KeyInvalidInput          = "invalid_input"
	KeyMissingOutputTitle    = "missing_output_title"
	KeyMissingOutput         = "missing_output"
	KeyInvalidOutputTitle    = "invalid_output_title"
	KeyInvalidOutput         = "invalid_output"
	KeyOutputIsInput         = "output_is_input"
	KeyInvalidOptionsTitle   = "invalid_options_title"
	KeyBusyTitle             = "busy_title"
	KeyBusy                  = "busy"
	KeyFFmpegNotFoundTitle   = "ffmpeg_not_found_title"
	KeyFFmpegNotFound        = "ffmpeg_not_found"
	KeyFFmpegUnavailable     = "ffmpeg_unavailable"
	KeyMissingCodecTitle     = "missing_codec_title"
	KeySuccessTitle          = "success_title"
	KeyConversionCompleted   = "conversion_completed"
	KeyConversionFailedTitle = "conversion_failed_title"
	KeyConversionFailed      = "conversion_failed"
	KeyStatusIdle            = "status_idle"
	KeyStatusChecking        = "status_checking"
	KeyStatusConverting      = "status_converting"
	KeyStatusStopping        = "status_stopping"
	KeyStatusStopped         = "status_stopped"
	KeyStatusCompleted       = "status_completed"
	KeyStatusError           = "status_error"
	KeyFFmpegPath            = "ffmpeg_path"
	KeyFFmpegPathHint        = "ffmpeg_path_hint"
	KeyAutoReveal            = "auto_reveal"
	KeyInterface             = "interface"
	KeySettingsSaved         = "settings_saved"
	KeyRestartRequired       = "restart_required"
	KeyErrorOpeningFile      = "error_opening_file"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage derives a language code from the POSIX locale variables
func systemLanguage() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(env)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		code, _, _ := strings.Cut(value, "_")
		code, _, _ = strings.Cut(code, ".")
		return strings.ToLower(code)
	}
	return "en"
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:              "Munchie MiniVideo Converter",
		KeyFile:                  "File",
		KeySettings:              "Settings",
		KeyLanguage:              "Language",
		KeyHelp:                  "Help",
		KeyAbout:                 "About",
		KeyAboutText:             "Munchie MiniVideo Converter\n\nGenerate mini WebP, GIF or APNG animations from video files using ffmpeg.\n- Formats: mp4, mkv, webm input → webp/gif/apng output\n- Options: width, fps, speed, loop, quality (WebP)",
		KeyFiles:                 "Files",
		KeyInputVideo:            "Input video",
		KeyOutputFile:            "Output file",
		KeyInputPlaceholder:      "Select input video (.mp4, .mkv, .webm)",
		KeyOutputPlaceholder:     "Select output file (.webp, .gif or .apng)",
		KeyBrowse:                "Browse…",
		KeyOptions:               "Options",
		KeyFormat:                "Format",
		KeyWidth:                 "Width (px)",
		KeyFPS:                   "FPS",
		KeySpeed:                 "Speed (×)",
		KeyQuality:               "WebP quality",
		KeyLoop:                  "Loop forever",
		KeyInterpolate:           "Frame interpolation (motion)",
		KeyConvert:               "Convert",
		KeyCancel:                "Cancel",
		KeyLog:                   "Log",
		KeyPreview:               "Preview",
		KeyReveal:                "Reveal",
		KeyOpen:                  "Open",
		KeySave:                  "Save",
		KeyMissingInputTitle:     "Missing input",
		KeyMissingInput:          "Please choose an input video file.",
		KeyInvalidInputTitle:     "Invalid input",
		KeyInvalidInput:          "The selected input file does not exist.",
		KeyMissingOutputTitle:    "Missing output",
		KeyMissingOutput:         "Please choose an output file path.",
		KeyInvalidOutputTitle:    "Invalid output",
		KeyInvalidOutput:         "The output directory does not exist.",
		KeyOutputIsInput:         "The output file must be different from the input video.",
		KeyInvalidOptionsTitle:   "Invalid options",
		KeyBusyTitle:             "Busy",
		KeyBusy:                  "A conversion is already running.",
		KeyFFmpegNotFoundTitle:   "ffmpeg not found",
		KeyFFmpegNotFound:        "ffmpeg is required but was not found in PATH. Please install it and try again.",
		KeyFFmpegUnavailable:     "ffmpeg is not available in PATH.",
		KeyMissingCodecTitle:     "Missing codec support",
		KeySuccessTitle:          "Success",
		KeyConversionCompleted:   "Conversion completed successfully.",
		KeyConversionFailedTitle: "Conversion failed",
		KeyConversionFailed:      "ffmpeg reported an error. See the log for details.",
		KeyStatusIdle:            "Ready",
		KeyStatusChecking:        "Checking decoders…",
		KeyStatusConverting:      "Converting",
		KeyStatusStopping:        "Stopping…",
		KeyStatusStopped:         "Stopped",
		KeyStatusCompleted:       "Done",
		KeyStatusError:           "Failed",
		KeyFFmpegPath:            "ffmpeg executable",
		KeyFFmpegPathHint:        "Leave empty to search PATH",
		KeyAutoReveal:            "Reveal the animation in the file manager when done",
		KeyInterface:             "Interface",
		KeySettingsSaved:         "Settings saved successfully!",
		KeyRestartRequired:       "Restart the app to use the new ffmpeg path.",
		KeyErrorOpeningFile:      "Error opening file",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:              "Munchie MiniVideo Converter",
		KeyFile:                  "Файл",
		KeySettings:              "Настройки",
		KeyLanguage:              "Язык",
		KeyHelp:                  "Справка",
		KeyAbout:                 "О программе",
		KeyAboutText:             "Munchie MiniVideo Converter\n\nСоздание мини-анимаций WebP, GIF или APNG из видеофайлов с помощью ffmpeg.\n- Форматы: mp4, mkv, webm → webp/gif/apng\n- Параметры: ширина, fps, скорость, повтор, качество (WebP)",
		KeyFiles:                 "Файлы",
		KeyInputVideo:            "Исходное видео",
		KeyOutputFile:            "Файл результата",
		KeyInputPlaceholder:      "Выберите видео (.mp4, .mkv, .webm)",
		KeyOutputPlaceholder:     "Выберите файл результата (.webp, .gif или .apng)",
		KeyBrowse:                "Обзор…",
		KeyOptions:               "Параметры",
		KeyFormat:                "Формат",
		KeyWidth:                 "Ширина (px)",
		KeyFPS:                   "Кадров/с",
		KeySpeed:                 "Скорость (×)",
		KeyQuality:               "Качество WebP",
		KeyLoop:                  "Бесконечный повтор",
		KeyInterpolate:           "Интерполяция кадров (движение)",
		KeyConvert:               "Конвертировать",
		KeyCancel:                "Отмена",
		KeyLog:                   "Журнал",
		KeyPreview:               "Предпросмотр",
		KeyReveal:                "Показать",
		KeyOpen:                  "Открыть",
		KeySave:                  "Сохранить",
		KeyMissingInputTitle:     "Нет исходного файла",
		KeyMissingInput:          "Выберите исходный видеофайл.",
		KeyInvalidInputTitle:     "Неверный исходный файл",
		KeyInvalidInput:          "Выбранный файл не существует.",
		KeyMissingOutputTitle:    "Нет файла результата",
		KeyMissingOutput:         "Укажите путь к файлу результата.",
		KeyInvalidOutputTitle:    "Неверный путь",
		KeyInvalidOutput:         "Папка для результата не существует.",
		KeyOutputIsInput:         "Файл результата должен отличаться от исходного видео.",
		KeyInvalidOptionsTitle:   "Неверные параметры",
		KeyBusyTitle:             "Занято",
		KeyBusy:                  "Конвертация уже выполняется.",
		KeyFFmpegNotFoundTitle:   "ffmpeg не найден",
		KeyFFmpegNotFound:        "Для работы нужен ffmpeg, но он не найден в PATH. Установите его и попробуйте снова.",
		KeyFFmpegUnavailable:     "ffmpeg недоступен в PATH.",
		KeyMissingCodecTitle:     "Нет поддержки кодека",
		KeySuccessTitle:          "Готово",
		KeyConversionCompleted:   "Конвертация успешно завершена.",
		KeyConversionFailedTitle: "Ошибка конвертации",
		KeyConversionFailed:      "ffmpeg сообщил об ошибке. Подробности в журнале.",
		KeyStatusIdle:            "Готов",
		KeyStatusChecking:        "Проверка декодеров…",
		KeyStatusConverting:      "Конвертация",
		KeyStatusStopping:        "Остановка…",
		KeyStatusStopped:         "Остановлено",
		KeyStatusCompleted:       "Готово",
		KeyStatusError:           "Ошибка",
		KeyFFmpegPath:            "Исполняемый файл ffmpeg",
		KeyFFmpegPathHint:        "Оставьте пустым для поиска в PATH",
		KeyAutoReveal:            "Показывать анимацию в файловом менеджере после завершения",
		KeyInterface:             "Интерфейс",
		KeySettingsSaved:         "Настройки сохранены!",
		KeyRestartRequired:       "Перезапустите приложение, чтобы применить новый путь к ffmpeg.",
		KeyErrorOpeningFile:      "Ошибка открытия файла",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:              "Munchie MiniVideo Converter",
		KeyFile:                  "Arquivo",
		KeySettings:              "Configurações",
		KeyLanguage:              "Idioma",
		KeyHelp:                  "Ajuda",
		KeyAbout:                 "Sobre",
		KeyAboutText:             "Munchie MiniVideo Converter\n\nGere mini animações WebP, GIF ou APNG a partir de vídeos usando ffmpeg.\n- Formatos: mp4, mkv, webm → webp/gif/apng\n- Opções: largura, fps, velocidade, repetição, qualidade (WebP)",
		KeyFiles:                 "Arquivos",
		KeyInputVideo:            "Vídeo de entrada",
		KeyOutputFile:            "Arquivo de saída",
		KeyInputPlaceholder:      "Selecione o vídeo (.mp4, .mkv, .webm)",
		KeyOutputPlaceholder:     "Selecione o arquivo de saída (.webp, .gif ou .apng)",
		KeyBrowse:                "Procurar…",
		KeyOptions:               "Opções",
		KeyFormat:                "Formato",
		KeyWidth:                 "Largura (px)",
		KeyFPS:                   "FPS",
		KeySpeed:                 "Velocidade (×)",
		KeyQuality:               "Qualidade WebP",
		KeyLoop:                  "Repetir para sempre",
		KeyInterpolate:           "Interpolação de quadros (movimento)",
		KeyConvert:               "Converter",
		KeyCancel:                "Cancelar",
		KeyLog:                   "Registro",
		KeyPreview:               "Prévia",
		KeyReveal:                "Mostrar",
		KeyOpen:                  "Abrir",
		KeySave:                  "Salvar",
		KeyMissingInputTitle:     "Entrada ausente",
		KeyMissingInput:          "Escolha um arquivo de vídeo de entrada.",
		KeyInvalidInputTitle:     "Entrada inválida",
		KeyInvalidInput:          "O arquivo selecionado não existe.",
		KeyMissingOutputTitle:    "Saída ausente",
		KeyMissingOutput:         "Escolha o caminho do arquivo de saída.",
		KeyInvalidOutputTitle:    "Saída inválida",
		KeyInvalidOutput:         "O diretório de saída não existe.",
		KeyOutputIsInput:         "O arquivo de saída deve ser diferente do vídeo de entrada.",
		KeyInvalidOptionsTitle:   "Opções inválidas",
		KeyBusyTitle:             "Ocupado",
		KeyBusy:                  "Uma conversão já está em andamento.",
		KeyFFmpegNotFoundTitle:   "ffmpeg não encontrado",
		KeyFFmpegNotFound:        "O ffmpeg é necessário, mas não foi encontrado no PATH. Instale-o e tente novamente.",
		KeyFFmpegUnavailable:     "O ffmpeg não está disponível no PATH.",
		KeyMissingCodecTitle:     "Codec não suportado",
		KeySuccessTitle:          "Sucesso",
		KeyConversionCompleted:   "Conversão concluída com sucesso.",
		KeyConversionFailedTitle: "Falha na conversão",
		KeyConversionFailed:      "O ffmpeg relatou um erro. Veja o registro para detalhes.",
		KeyStatusIdle:            "Pronto",
		KeyStatusChecking:        "Verificando decodificadores…",
		KeyStatusConverting:      "Convertendo",
		KeyStatusStopping:        "Parando…",
		KeyStatusStopped:         "Parado",
		KeyStatusCompleted:       "Concluído",
		KeyStatusError:           "Falhou",
		KeyFFmpegPath:            "Executável do ffmpeg",
		KeyFFmpegPathHint:        "Deixe vazio para procurar no PATH",
		KeyAutoReveal:            "Mostrar a animação no gerenciador de arquivos ao concluir",
		KeyInterface:             "Interface",
		KeySettingsSaved:         "Configurações salvas com sucesso!",
		KeyRestartRequired:       "Reinicie o aplicativo para usar o novo caminho do ffmpeg.",
		KeyErrorOpeningFile:      "Erro ao abrir arquivo",
	}
}
