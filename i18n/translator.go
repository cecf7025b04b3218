package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "property").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_json":
			return "JSONが不正です"
		case "kind_mismatch":
			return "値の種別が一致しません"
		case "required":
			return "必須プロパティが不足しています"
		case "discriminator_missing":
			return "判別子がありません"
		case "discriminator_unknown":
			return "未知の判別子です"
		case "incomplete_result":
			return "生成結果が不完全です"
		case "unprojectable_schema":
			return "スキーマを文法へ射影できません"
		case "unsupported_constraint":
			return "制約を適用できません"
		}
	default: // "en"
		switch code {
		case "invalid_json":
			return "invalid JSON"
		case "kind_mismatch":
			return "value kind mismatch"
		case "required":
			return "required property missing"
		case "discriminator_missing":
			return "discriminator missing"
		case "discriminator_unknown":
			return "unknown discriminator"
		case "incomplete_result":
			return "generation result incomplete"
		case "unprojectable_schema":
			return "schema cannot be projected to grammar"
		case "unsupported_constraint":
			return "constraint not applicable"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
