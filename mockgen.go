//go:build gomock || generate

package netplay

//go:generate sh -c "go run go.uber.org/mock/mockgen -typed -build_flags=\"-tags=gomock\" -package netplay -self_package github.com/netplay-go/netplay -destination mock_simulation_test.go github.com/netplay-go/netplay Simulation"
//go:generate sh -c "go run go.uber.org/mock/mockgen -typed -build_flags=\"-tags=gomock\" -package netplay -self_package github.com/netplay-go/netplay -destination mock_patch_codec_test.go github.com/netplay-go/netplay PatchCodec"
