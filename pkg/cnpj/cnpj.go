// Package cnpj reúne utilidades para el CNPJ (registro nacional de personas jurídicas de Brasil).
// La máscara XX.XXX.XXX/XXXX-XX es sólo de presentación: validaciones y búsquedas usan los dígitos.
package cnpj

// Length cantidad de dígitos de un CNPJ.
const Length = 14

// pesos RFB para el primer y segundo dígito verificador.
var (
	weightsFirst  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	weightsSecond = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Unformat deja sólo los dígitos ASCII del valor.
func Unformat(value string) string {
	out := make([]byte, 0, len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			out = append(out, byte(r))
		}
	}
	return string(out)
}

// Format aplica la máscara de forma progresiva, igual que el campo del formulario mientras
// se escribe: "11222" -> "11.222", "11222333000181" -> "11.222.333/0001-81".
// Los dígitos que sobrepasan los 14 se descartan.
func Format(value string) string {
	d := Unformat(value)
	switch {
	case len(d) <= 2:
		return d
	case len(d) <= 5:
		return d[:2] + "." + d[2:]
	case len(d) <= 8:
		return d[:2] + "." + d[2:5] + "." + d[5:]
	case len(d) <= 12:
		return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:]
	}
	end := len(d)
	if end > Length {
		end = Length
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:end]
}

// HasValidLength indica si el valor tiene exactamente 14 dígitos (ignorando la máscara).
func HasValidLength(value string) bool {
	return len(Unformat(value)) == Length
}

// HasValidCheckDigits valida los dos dígitos verificadores (módulo 11 de la RFB).
// Secuencias repetidas ("00000000000000") se rechazan aunque cumplan la cuenta.
func HasValidCheckDigits(value string) bool {
	d := Unformat(value)
	if len(d) != Length || allSameDigit(d) {
		return false
	}
	first := checkDigit(d[:12], weightsFirst[:])
	if d[12] != first {
		return false
	}
	return d[13] == checkDigit(d[:13], weightsSecond[:])
}

func checkDigit(base string, weights []int) byte {
	var sum int
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * weights[i]
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte('0' + (11 - rest))
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
