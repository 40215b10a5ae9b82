package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhoneIndia(t *testing.T) {
	valid := []string{
		"9876543210",
		"6000000000",
		"7123 456 789",
		"812-345-6789",
	}
	for _, phone := range valid {
		require.NoError(t, Phone(phone, "91"), "expected %q to be valid", phone)
	}

	invalid := []string{
		"",
		"123456789",    // 9 digits
		"12345678901",  // 11 digits
		"5876543210",   // starts with 5
		"987654321",    // 9 digits
		"98765432100",  // 11 digits
		"abcdefghij",   // no digits of the right count
		"98ab76543210", // letters are rejected, not stripped
		"9876543210;",  // punctuation beyond separators
	}
	for _, phone := range invalid {
		require.Error(t, Phone(phone, "91"), "expected %q to be invalid", phone)
	}
}

func TestPhoneGeneral(t *testing.T) {
	require.NoError(t, Phone("1234567", ""))
	require.NoError(t, Phone("123456789012345", ""))
	require.NoError(t, Phone("(415) 555-2671", ""))
	require.Error(t, Phone("123456", ""))
	require.Error(t, Phone("1234567890123456", ""))
	require.Error(t, Phone("41x5555267", ""))
}

func TestNormalizePhone(t *testing.T) {
	require.Equal(t, "+919876543210", NormalizePhone("9876543210"))
	require.Equal(t, "+919876543210", NormalizePhone("919876543210"))
	require.Equal(t, "+919876543210", NormalizePhone(" +919876543210 "))
	require.Equal(t, "+14155552671", NormalizePhone("+14155552671"))
}

func TestE164Phone(t *testing.T) {
	require.NoError(t, E164Phone("+919876543210"))
	require.Error(t, E164Phone("+915876543210")) // Indian numbers start 6-9
	require.NoError(t, E164Phone("+14155552671"))
}

func TestName(t *testing.T) {
	require.NoError(t, Name("Asha Rao"))
	require.NoError(t, Name("John O'Brien"))
	require.NoError(t, Name("Jean-Luc St. Pierre"))

	require.Error(t, Name("Al"))                      // too short
	require.Error(t, Name("A1 Driver"))               // digits
	require.Error(t, Name(strings.Repeat("a", 60))) // too long
}

func TestEmail(t *testing.T) {
	require.NoError(t, Email("asha@example.com"))
	require.NoError(t, Email("a.b+c@sub.domain.in"))
	require.Error(t, Email("not-an-email"))
	require.Error(t, Email("missing@tld"))
}

func TestLicense(t *testing.T) {
	require.NoError(t, License("KL-11-2017-0001234"))
	require.NoError(t, License("kl1120170001234")) // lowercase, no hyphens
	require.Error(t, License("KL-11"))
	require.Error(t, License("1234567890123"))
	require.Error(t, License("KL-11-2017-00012345678")) // too long
}

func TestVehicleNo(t *testing.T) {
	require.NoError(t, VehicleNo("KL-07-1234"))
	require.NoError(t, VehicleNo("KA 01 AB 999"))
	require.Error(t, VehicleNo("AB"))
	require.Error(t, VehicleNo("THIS-NUMBER-IS-WAY-TOO-LONG"))
	require.Error(t, VehicleNo("KL_07_1234"))
}

func TestPassword(t *testing.T) {
	require.NoError(t, Password("Str0ng!pass"))
	require.Error(t, Password("short1!"))
	require.Error(t, Password("alllowercase1!"))
	require.Error(t, Password("ALLUPPERCASE1!"))
	require.Error(t, Password("NoDigits!!"))
	require.Error(t, Password("NoSymbols123"))
}

func TestConfirmPassword(t *testing.T) {
	require.NoError(t, ConfirmPassword("Str0ng!pass", "Str0ng!pass"))
	require.Error(t, ConfirmPassword("Str0ng!pass", ""))
	require.Error(t, ConfirmPassword("Str0ng!pass", "different"))
}

func TestTimeRange(t *testing.T) {
	require.NoError(t, TimeOfDay("08:30"))
	require.Error(t, TimeOfDay("24:00"))
	require.Error(t, TimeOfDay("8:30am"))

	require.NoError(t, TimeRange("08:00", "09:30"))
	require.Error(t, TimeRange("09:30", "08:00")) // arrival before departure
	require.Error(t, TimeRange("08:00", "08:00")) // zero duration
	require.Error(t, TimeRange("08:00", "08:03")) // under 5 minutes
	require.Error(t, TimeRange("06:00", "22:00")) // over 12 hours
}
