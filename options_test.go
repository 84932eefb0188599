package hokan

import "testing"

func TestOptions_Validate(t *testing.T) {
	type testcase struct {
		o    Options
		want error
	}

	tcs := []testcase{
		{
			o: Options{
				Dir:  "./path/to/dir",
				Name: "myName",
			},
			want: nil,
		},
		{
			o: Options{
				Name: "myName",
			},
			want: ErrEmptyDirectory,
		},
		{
			o: Options{
				Dir: "./path/to/dir",
			},
			want: ErrEmptyName,
		},
	}

	for _, tc := range tcs {
		err := tc.o.Validate()
		if err != tc.want {
			t.Fatalf("invalid error, expected <%v> and received <%v>", tc.want, err)
		}
	}
}

func TestOptions_FullName(t *testing.T) {
	type testcase struct {
		o    Options
		want string
	}

	tcs := []testcase{
		{
			o:    MakeOptions("./dir", "myName"),
			want: "myName",
		},
		{
			o: Options{
				Dir:       "./dir",
				Name:      "myName",
				Namespace: "myNamespace",
			},
			want: "myNamespace_myName",
		},
	}

	for _, tc := range tcs {
		if name := tc.o.FullName(); name != tc.want {
			t.Fatalf("invalid name, expected <%s> and received <%s>", tc.want, name)
		}
	}
}
