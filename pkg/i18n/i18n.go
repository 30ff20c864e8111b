package i18n

type Messages struct {
	AppUsage         string
	GenerateUsage    string
	VerifyUsage      string
	RevealUsage      string
	PasswordPrompt   string
	PasswordRepeat   string
	PasswordMismatch string
	TranscribeNotice string
	Summary          string
	BackupSaved      string
	StaleNotice      string
	OrphanNotice     string
	VerifyLine       string
	VerifyFailed     string
	VerifyOK         string
	ErrorPrefix      string
}

func Get(lang string) Messages {
	switch lang {
	case "ru":
		return Messages{
			AppUsage:         "Генерация Aptos-аккаунтов из одной мнемоники",
			GenerateUsage:    "создать мнемонику и профили аккаунтов",
			VerifyUsage:      "сверить профили с мнемоникой",
			RevealUsage:      "расшифровать резервную копию мнемоники",
			PasswordPrompt:   "Пароль для резервной копии: ",
			PasswordRepeat:   "Повторите пароль: ",
			PasswordMismatch: "пароли не совпадают",
			TranscribeNotice: "Запишите мнемонику выше: это единственный способ восстановить аккаунты.",
			Summary:          "Готово: создано %d, пропущено %d, мнемоника: %s\n",
			BackupSaved:      "Зашифрованная копия: %s\n",
			StaleNotice:      "Внимание: профиль %s не соответствует текущей мнемонике\n",
			OrphanNotice:     "Внимание: каталог %s не выводится из текущей мнемоники\n",
			VerifyLine:       "(%d) %s %s %s\n",
			VerifyFailed:     "проверка не пройдена",
			VerifyOK:         "Все профили соответствуют мнемонике.",
			ErrorPrefix:      "Ошибка:",
		}
	default: // "en"
		return Messages{
			AppUsage:         "Derive Aptos accounts from a single mnemonic",
			GenerateUsage:    "create a mnemonic and one profile per account",
			VerifyUsage:      "check provisioned profiles against the mnemonic",
			RevealUsage:      "decrypt an encrypted mnemonic backup",
			PasswordPrompt:   "Backup password: ",
			PasswordRepeat:   "Repeat password: ",
			PasswordMismatch: "passwords do not match",
			TranscribeNotice: "Write down the mnemonic above: it is the only way to recover these accounts.",
			Summary:          "Done: %d written, %d skipped, mnemonic: %s\n",
			BackupSaved:      "Encrypted backup: %s\n",
			StaleNotice:      "Warning: profile %s does not match the current mnemonic\n",
			OrphanNotice:     "Warning: directory %s is not derived from the current mnemonic\n",
			VerifyLine:       "(%d) %s %s %s\n",
			VerifyFailed:     "verification failed",
			VerifyOK:         "All profiles match the mnemonic.",
			ErrorPrefix:      "Error:",
		}
	}
}
