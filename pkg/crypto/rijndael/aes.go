package rijndael

// Encrypt encrypts one 16-byte block and returns the ciphertext; block is
// not modified. When expandedKey is non-empty it is used as is and key is
// ignored, otherwise key is expanded first.
func Encrypt(block, key, expandedKey []byte) ([]byte, error) {
	schedule, err := selectSchedule(key, expandedKey)
	if err != nil {
		return nil, err
	}
	s, err := LoadState(block)
	if err != nil {
		return nil, err
	}
	if err := EncryptState(&s, schedule); err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

// Decrypt is the inverse of Encrypt.
func Decrypt(block, key, expandedKey []byte) ([]byte, error) {
	schedule, err := selectSchedule(key, expandedKey)
	if err != nil {
		return nil, err
	}
	s, err := LoadState(block)
	if err != nil {
		return nil, err
	}
	if err := DecryptState(&s, schedule); err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

func selectSchedule(key, expandedKey []byte) ([]byte, error) {
	if len(expandedKey) > 0 {
		if _, err := Rounds(expandedKey); err != nil {
			return nil, err
		}
		return expandedKey, nil
	}
	if len(key) == 0 {
		return nil, ErrMissingKey
	}
	return ExpandKey(key)
}

// EncryptState runs the forward cipher on a state in place. The round count
// comes from the length of the expanded key; an unrecognised length is an
// error and leaves the state untouched.
func EncryptState(s *State, expandedKey []byte) error {
	rounds, err := Rounds(expandedKey)
	if err != nil {
		return err
	}
	encryptState(s, roundKeys(expandedKey, rounds))
	return nil
}

// DecryptState runs the inverse cipher on a state in place.
func DecryptState(s *State, expandedKey []byte) error {
	rounds, err := Rounds(expandedKey)
	if err != nil {
		return err
	}
	decryptState(s, roundKeys(expandedKey, rounds))
	return nil
}

// rks holds round keys 0 through N.
func encryptState(s *State, rks []State) {
	n := len(rks) - 1
	s.AddRoundKey(&rks[0])
	for r := 1; r < n; r++ {
		s.Round(&rks[r])
	}
	s.FinalRound(&rks[n])
}

func decryptState(s *State, rks []State) {
	n := len(rks) - 1
	s.AddRoundKey(&rks[n])
	for r := n - 1; r > 0; r-- {
		s.InvRound(&rks[r])
	}
	s.InvFinalRound(&rks[0])
}
