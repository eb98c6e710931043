package set

// BinaryStore is a collection of sets that track membership of opaque binary
// values, such as run-length codes.
type BinaryStore = Store[[]byte]

// A BinarySet is a unique set of binary values.
//
// Values in a binary set cannot be an empty slice.
type BinarySet = Set[[]byte]

// BinaryInterceptor is an [Interceptor] for a [BinaryStore].
type BinaryInterceptor = Interceptor[[]byte]
