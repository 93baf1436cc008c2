package validators

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/serialization"
)

// deserializers backs the custom tags that coerce raw request values. The message of
// a failed validation is the deserializer's own error.
var deserializers = map[string]func(string) error{
	"timestamp": func(v string) error {
		_, err := serialization.DeserializeTimestamp(v)
		return err
	},
	"amount": func(v string) error {
		_, err := serialization.DeserializeAssetAmount(v)
		return err
	},
	"price": func(v string) error {
		_, err := serialization.DeserializePrice(v)
		return err
	},
	"fee": func(v string) error {
		_, err := serialization.DeserializeFee(v)
		return err
	},
	"asset": func(v string) error {
		_, err := serialization.DeserializeAsset(v)
		return err
	},
	"trade_type": func(v string) error {
		_, err := serialization.DeserializeTradeType(v)
		return err
	},
	"location": func(v string) error {
		_, err := serialization.DeserializeLocation(v)
		return err
	},
	"trade_pair": func(v string) error {
		_, err := serialization.DeserializeTradePair(v)
		return err
	},
}

func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	for tag, deserialize := range deserializers {
		_ = validate.RegisterValidation(tag, deserializerValidation(deserialize))
	}
	_ = validate.RegisterValidation("b64", base64Validation)
	_ = validate.RegisterValidation("exchange", exchangeValidation)
	validate.RegisterAlias("not_empty", "required")
	return validate
}

func deserializerValidation(deserialize func(string) error) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return deserialize(fl.Field().String()) == nil
	}
}

func exchangeValidation(fl validator.FieldLevel) bool {
	return entities.IsSupportedExchange(fl.Field().String())
}

func supportedExchangeNames() string {
	names := make([]string, 0, entities.SupportedExchanges.Cardinality())
	for _, location := range entities.SupportedExchanges.ToSlice() {
		names = append(names, string(location))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func base64Validation(fl validator.FieldLevel) bool {
	_, err := base64.StdEncoding.DecodeString(fl.Field().String())
	return err == nil
}

// embeddedSegment marks embedded structs in a field namespace. Their fields are
// reported as if they were declared on the outer struct, as encoding/json does.
const embeddedSegment = "<embedded>"

// jsonFieldName names fields after their json (or query) tag so errors match the
// request payload. Fields without tags keep the struct field name.
func jsonFieldName(field reflect.StructField) string {
	if field.Anonymous && field.Tag.Get("json") == "" {
		return embeddedSegment
	}
	for _, tagName := range []string{"json", "query"} {
		name := strings.SplitN(field.Tag.Get(tagName), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

func ParseValidationError(errors validator.ValidationErrors) map[string]interface{} {
	fieldErrors := make(map[string]interface{})
	for _, err := range errors {
		fieldErrors[getFieldName(err)] = msgForFieldError(err)
	}
	return fieldErrors
}

// msgForFieldError gets the message for the given validation error (tag).
func msgForFieldError(fieldError validator.FieldError) string {
	if deserialize, ok := deserializers[fieldError.Tag()]; ok {
		if err := deserialize(fmt.Sprint(fieldError.Value())); err != nil {
			return err.Error()
		}
	}

	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "not_empty":
		return "This field cannot be empty"
	case "b64":
		return "Should be base64 encoded"
	case "exchange":
		return fmt.Sprintf("Unexpected value %q. Expected one of the supported exchanges: %s", fieldError.Value(), supportedExchangeNames())
	case "oneof":
		params := strings.Join(strings.Split(fieldError.Param(), " "), ", ")
		return fmt.Sprintf("Unexpected value %q. Expected one of the following values: %s", fieldError.Value(), params)
	case "required_with":
		return fmt.Sprintf("This field is required when %s is provided", fieldError.Param())
	case "gt":
		if fieldError.Kind() == reflect.Slice || fieldError.Kind() == reflect.Array {
			return "Should have at least 1 element"
		}
		return fmt.Sprintf("Should be greater than %s", fieldError.Param())
	case "gte":
		return fmt.Sprintf("Should be greater than or equal %s", fieldError.Param())
	default:
		return "Invalid value"
	}
}

func getFieldName(fieldError validator.FieldError) string {
	// Ex.: structName.fieldName, structName.nestedStructName.nestedStructFieldName, structName.nestedStructName.nestedStructName....
	namespace := make([]string, 0)
	for _, segment := range strings.Split(fieldError.Namespace(), ".") {
		if segment != embeddedSegment {
			namespace = append(namespace, segment)
		}
	}
	length := len(namespace)
	if length == 2 {
		return lcFirst(namespace[1])
	}

	if length > 2 {
		return fmt.Sprintf("%s.%s", lcFirst(namespace[length-2]), lcFirst(namespace[length-1]))
	}

	return lcFirst(namespace[0])
}

// lcFirst lowers the case of the first letter of the given string.
//
//	Example: Address -> address
func lcFirst(str string) string {
	for index, letter := range str {
		return string(unicode.ToLower(letter)) + str[index+1:]
	}
	return ""
}
