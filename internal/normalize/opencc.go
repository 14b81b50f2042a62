package normalize

import "github.com/longbridgeapp/opencc"

// OpenCC is a Converter backed by the OpenCC traditional-to-simplified
// dictionaries.
type OpenCC struct {
	cc *opencc.OpenCC
}

// NewOpenCC builds a t2s converter. An error means the capability is
// unavailable; callers pass a nil Converter instead and normalization
// proceeds without the conversion step.
func NewOpenCC() (*OpenCC, error) {
	cc, err := opencc.New("t2s")
	if err != nil {
		return nil, err
	}
	return &OpenCC{cc: cc}, nil
}

func (o *OpenCC) Convert(s string) (string, error) {
	return o.cc.Convert(s)
}
