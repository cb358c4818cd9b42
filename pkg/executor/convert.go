package executor

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var uuidType = reflect.TypeOf(uuid.UUID{})

// convertArg converts a captured argument to targetType. Named types are
// converted through their underlying kind.
func convertArg(arg string, targetType reflect.Type) (reflect.Value, error) {
	if targetType == uuidType {
		id, err := uuid.Parse(arg)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(id), nil
	}

	value := reflect.New(targetType).Elem()

	switch targetType.Kind() {
	case reflect.String:
		value.SetString(arg)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(arg, 10, targetType.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetInt(v)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(arg, 10, targetType.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetUint(v)

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(arg, targetType.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetFloat(v)

	case reflect.Bool:
		v, err := parseBool(arg)
		if err != nil {
			return reflect.Value{}, err
		}
		value.SetBool(v)

	default:
		return reflect.Value{}, fmt.Errorf("unsupported parameter type: %s", targetType.Kind())
	}

	return value, nil
}

// parseBool accepts the strconv forms plus yes/no, on/off and
// enabled/disabled in any case.
func parseBool(arg string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "yes", "on", "enabled":
		return true, nil
	case "no", "off", "disabled":
		return false, nil
	}
	return strconv.ParseBool(strings.ToLower(arg))
}
