// Package rut valida el RUT uruguayo (Registro Único Tributario, DGI).
package rut

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Length cantidad de dígitos de un RUT, incluido el verificador.
const Length = 12

// ErrInvalid RUT con largo o dígito verificador incorrecto.
var ErrInvalid = errors.New("rut inválido")

// pesos del módulo 11 de la DGI, aplicados a los 11 primeros dígitos de izquierda a derecha.
var weights = [Length - 1]int{4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

// Validate acepta el RUT con o sin puntos, guiones o espacios ("21.100342.001-7").
func Validate(s string) error {
	digits := extractDigits(s)
	if len(digits) != Length {
		return fmt.Errorf("%w: debe tener %d dígitos, se encontraron %d", ErrInvalid, Length, len(digits))
	}
	expected, err := CheckDigit(string(digits[:Length-1]))
	if err != nil {
		return err
	}
	if digits[Length-1] != expected {
		return fmt.Errorf("%w: dígito verificador esperado %c, recibido %c", ErrInvalid, expected, digits[Length-1])
	}
	return nil
}

// CheckDigit calcula el dígito verificador para los 11 dígitos base.
func CheckDigit(base string) (byte, error) {
	digits := extractDigits(base)
	if len(digits) != Length-1 {
		return 0, fmt.Errorf("%w: se requieren %d dígitos base, se encontraron %d", ErrInvalid, Length-1, len(digits))
	}
	var sum int
	for i, d := range digits {
		sum += int(d-'0') * weights[i]
	}
	switch dv := 11 - sum%11; dv {
	case 11:
		return '0', nil
	case 10:
		// La DGI no asigna números con resto 1.
		return 0, fmt.Errorf("%w: número base sin dígito verificador posible", ErrInvalid)
	default:
		return byte('0' + dv), nil
	}
}

// Normalize devuelve solo los dígitos cuando s es un RUT válido; cualquier otro documento
// (cédula, texto libre) se devuelve sin espacios extremos.
func Normalize(s string) string {
	if Validate(s) == nil {
		return string(extractDigits(s))
	}
	return strings.TrimSpace(s)
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
