package section

import "github.com/jeffro256/epee/codec"

// encodeSectionBytes is the only place in this package that imports
// codec: Section.EncodeEPEE/DecodeEPEE only ever need bridge.Sink/
// bridge.Source, so keeping this one helper isolated here means a
// caller that only needs EncodeEPEE/DecodeEPEE (e.g. bridge's own
// tests) never pulls in the codec package transitively through
// anything but this file.
func encodeSectionBytes(s *Section) ([]byte, error) {
	enc, err := codec.NewEncoder()
	if err != nil {
		return nil, err
	}
	defer enc.Release()

	if err := s.EncodeEPEE(enc); err != nil {
		return nil, err
	}

	return enc.Finish()
}
