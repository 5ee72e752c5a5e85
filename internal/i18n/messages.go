// Package i18n holds the localized user-facing messages for the API surface.
// The page content itself is localized on the frontend; only messages the
// backend produces (validation, robot check, calculator errors) live here.
package i18n

import "golang.org/x/text/language"

type Key string

const (
	KeyRequiredFields  Key = "required_fields"
	KeyAgreeRequired   Key = "agree_required"
	KeyRobotCheck      Key = "robot_check"
	KeyInvalidRequest  Key = "invalid_request"
	KeyServerError     Key = "server_error"
	KeyTooManyRequests Key = "too_many_requests"
	KeyUnknownProduct  Key = "unknown_product"
	KeyInvalidSum      Key = "invalid_sum"
)

// Russian is the site's primary locale and the fallback for anything we
// cannot match.
var supported = []language.Tag{
	language.Russian,
	language.Kazakh,
	language.English,
}

var matcher = language.NewMatcher(supported)

var messages = map[language.Tag]map[Key]string{
	language.Russian: {
		KeyRequiredFields:  "Пожалуйста, заполните все обязательные поля",
		KeyAgreeRequired:   "Необходимо согласие на обработку персональных данных",
		KeyRobotCheck:      "Подтвердите, что вы не робот",
		KeyInvalidRequest:  "Некорректный запрос",
		KeyServerError:     "Не удалось отправить сообщение. Попробуйте позже",
		KeyTooManyRequests: "Слишком много запросов. Попробуйте позже",
		KeyUnknownProduct:  "Неизвестный страховой продукт",
		KeyInvalidSum:      "Страховая сумма должна быть больше нуля",
	},
	language.Kazakh: {
		KeyRequiredFields:  "Барлық міндетті өрістерді толтырыңыз",
		KeyAgreeRequired:   "Дербес деректерді өңдеуге келісім қажет",
		KeyRobotCheck:      "Робот емес екеніңізді растаңыз",
		KeyInvalidRequest:  "Қате сұраныс",
		KeyServerError:     "Хабарлама жіберілмеді. Кейінірек қайталап көріңіз",
		KeyTooManyRequests: "Сұраныстар тым көп. Кейінірек қайталап көріңіз",
		KeyUnknownProduct:  "Белгісіз сақтандыру өнімі",
		KeyInvalidSum:      "Сақтандыру сомасы нөлден артық болуы тиіс",
	},
	language.English: {
		KeyRequiredFields:  "Please fill in all required fields",
		KeyAgreeRequired:   "You must agree to the personal data processing terms",
		KeyRobotCheck:      "Please confirm you are not a robot",
		KeyInvalidRequest:  "Invalid request",
		KeyServerError:     "Failed to send your message. Please try again later",
		KeyTooManyRequests: "Too many requests. Please try again later",
		KeyUnknownProduct:  "Unknown insurance product",
		KeyInvalidSum:      "Insured sum must be greater than zero",
	},
}

// Resolve picks the best supported locale for an Accept-Language header value.
func Resolve(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.Russian
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// T returns the message for key in the given locale, falling back to Russian.
func T(tag language.Tag, key Key) string {
	if m, ok := messages[tag]; ok {
		if msg, ok := m[key]; ok {
			return msg
		}
	}
	return messages[language.Russian][key]
}
